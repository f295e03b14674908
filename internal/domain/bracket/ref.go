package bracket

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDependencyRef = errors.New("invalid dependency reference")

// Outcome selects which side of a finished match feeds a participant slot.
type Outcome string

const (
	OutcomeWinner Outcome = "W"
	OutcomeLoser  Outcome = "L"
)

// Named finals that are allowed as dependency targets besides M<digits>.
const (
	MatchIDUpperFinal = "UBF"
	MatchIDLowerFinal = "LBF"
	MatchIDGrandFinal = "GF"
)

// DependencyRef says a slot is filled by the winner or loser of another match.
type DependencyRef struct {
	Outcome Outcome
	MatchID string
}

func Winner(matchID string) *DependencyRef {
	return &DependencyRef{Outcome: OutcomeWinner, MatchID: matchID}
}

func Loser(matchID string) *DependencyRef {
	return &DependencyRef{Outcome: OutcomeLoser, MatchID: matchID}
}

// String renders the tag form, e.g. "W-M9".
func (r DependencyRef) String() string {
	return string(r.Outcome) + "-" + r.MatchID
}

func (r DependencyRef) Validate() error {
	if r.Outcome != OutcomeWinner && r.Outcome != OutcomeLoser {
		return fmt.Errorf("%w: outcome %q", ErrInvalidDependencyRef, r.Outcome)
	}
	if !isValidMatchID(r.MatchID) {
		return fmt.Errorf("%w: match id %q", ErrInvalidDependencyRef, r.MatchID)
	}
	return nil
}

// ParseDependencyRef parses "<W|L>-<MatchID>".
func ParseDependencyRef(raw string) (DependencyRef, error) {
	raw = strings.TrimSpace(raw)
	outcome, matchID, ok := strings.Cut(raw, "-")
	if !ok {
		return DependencyRef{}, fmt.Errorf("%w: %q", ErrInvalidDependencyRef, raw)
	}

	ref := DependencyRef{Outcome: Outcome(outcome), MatchID: matchID}
	if err := ref.Validate(); err != nil {
		return DependencyRef{}, err
	}
	return ref, nil
}

// ParseOptionalDependencyRef treats an empty string as "no source".
func ParseOptionalDependencyRef(raw string) (*DependencyRef, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	ref, err := ParseDependencyRef(raw)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// RefString returns the tag form of ref, or "" for nil.
func RefString(ref *DependencyRef) string {
	if ref == nil {
		return ""
	}
	return ref.String()
}

func isValidMatchID(id string) bool {
	switch id {
	case MatchIDUpperFinal, MatchIDLowerFinal, MatchIDGrandFinal:
		return true
	}
	if len(id) < 2 || id[0] != 'M' {
		return false
	}
	for _, c := range id[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
