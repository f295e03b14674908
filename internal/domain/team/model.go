package team

import "fmt"

// Team is a participant of the tournament.
type Team struct {
	ID   string
	Name string
	Logo string
	Seed int
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Seed < 0 {
		return fmt.Errorf("team seed must be >= 0")
	}

	return nil
}
