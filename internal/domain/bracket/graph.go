package bracket

import (
	"fmt"
	"sort"
)

// Slot identifies a participant position inside a match.
type Slot int

const (
	SlotTeam1 Slot = 1
	SlotTeam2 Slot = 2
)

// Dependent is one slot of one match that is fed by another match's outcome.
type Dependent struct {
	MatchID string
	Slot    Slot
	Outcome Outcome
}

// Graph is the reverse index of the template's dependency references.
// It is built once and never mutated.
type Graph struct {
	order      []string
	matches    map[string]Match
	dependents map[string][]Dependent
}

func NewGraph(matches []Match) (*Graph, error) {
	g := &Graph{
		order:      make([]string, 0, len(matches)),
		matches:    make(map[string]Match, len(matches)),
		dependents: make(map[string][]Dependent),
	}

	numbers := make(map[int]string, len(matches))
	for _, m := range matches {
		if m.ID == "" {
			return nil, fmt.Errorf("template match id is required")
		}
		if _, exists := g.matches[m.ID]; exists {
			return nil, fmt.Errorf("duplicate template match id %s", m.ID)
		}
		if other, exists := numbers[m.MatchNumber]; exists {
			return nil, fmt.Errorf("match number %d used by %s and %s", m.MatchNumber, other, m.ID)
		}
		numbers[m.MatchNumber] = m.ID
		g.matches[m.ID] = m.Clone()
		g.order = append(g.order, m.ID)
	}

	for _, id := range g.order {
		m := g.matches[id]
		for _, slot := range []Slot{SlotTeam1, SlotTeam2} {
			ref := sourceFor(m, slot)
			if ref == nil {
				continue
			}
			if err := ref.Validate(); err != nil {
				return nil, fmt.Errorf("match %s slot %d: %w", m.ID, slot, err)
			}
			if ref.MatchID == m.ID {
				return nil, fmt.Errorf("match %s cannot depend on itself", m.ID)
			}
			if _, ok := g.matches[ref.MatchID]; !ok {
				return nil, fmt.Errorf("match %s references unknown match %s", m.ID, ref.MatchID)
			}
			g.dependents[ref.MatchID] = append(g.dependents[ref.MatchID], Dependent{
				MatchID: m.ID,
				Slot:    slot,
				Outcome: ref.Outcome,
			})
		}
	}

	for key := range g.dependents {
		items := g.dependents[key]
		sort.SliceStable(items, func(i, j int) bool {
			return g.matches[items[i].MatchID].MatchNumber < g.matches[items[j].MatchID].MatchNumber
		})
	}

	return g, nil
}

// Dependents lists the slots sourced from matchID, ordered by match number.
func (g *Graph) Dependents(matchID string) []Dependent {
	return append([]Dependent(nil), g.dependents[matchID]...)
}

// DependentMatchIDs lists the distinct matches sourced from matchID.
func (g *Graph) DependentMatchIDs(matchID string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(g.dependents[matchID]))
	for _, dep := range g.dependents[matchID] {
		if _, ok := seen[dep.MatchID]; ok {
			continue
		}
		seen[dep.MatchID] = struct{}{}
		out = append(out, dep.MatchID)
	}
	return out
}

// Source returns the template reference of a slot, nil for fixed slots.
func (g *Graph) Source(matchID string, slot Slot) *DependencyRef {
	m, ok := g.matches[matchID]
	if !ok {
		return nil
	}
	ref := sourceFor(m, slot)
	if ref == nil {
		return nil
	}
	copied := *ref
	return &copied
}

func (g *Graph) Has(matchID string) bool {
	_, ok := g.matches[matchID]
	return ok
}

// Matches returns the template in declaration order.
func (g *Graph) Matches() []Match {
	out := make([]Match, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.matches[id].Clone())
	}
	return out
}

func sourceFor(m Match, slot Slot) *DependencyRef {
	if slot == SlotTeam1 {
		return m.Team1Source
	}
	return m.Team2Source
}

// TeamInSlot reads the participant currently stored in a slot.
func TeamInSlot(m Match, slot Slot) string {
	if slot == SlotTeam1 {
		return m.Team1ID
	}
	return m.Team2ID
}

// SetTeamInSlot writes a participant into a slot and reports whether it changed.
func SetTeamInSlot(m *Match, slot Slot, teamID string) bool {
	if slot == SlotTeam1 {
		if m.Team1ID == teamID {
			return false
		}
		m.Team1ID = teamID
		return true
	}
	if m.Team2ID == teamID {
		return false
	}
	m.Team2ID = teamID
	return true
}
