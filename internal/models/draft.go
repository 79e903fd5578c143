package models

// DraftStatus is the state of a draft for one league and game
type DraftStatus string

const (
	// DraftStatusActive indicates a participant is still due to pick
	DraftStatusActive DraftStatus = "active"

	// DraftStatusComplete indicates every participant has picked
	DraftStatusComplete DraftStatus = "complete"
)

// DraftState is derived from the participants and the picks made for a game. It is never
// stored.
type DraftState struct {
	LeagueID string      `json:"league_id"`
	GameID   string      `json:"game_id"`
	Status   DraftStatus `json:"status"`

	// CurrentTurn is the participant due to pick, empty when the draft is complete
	CurrentTurn string `json:"current_turn,omitempty"`

	// Order is the participants in draft order
	Order []*Participant `json:"order"`

	// Picks are the picks made for the game in the order they were recorded
	Picks []*Pick `json:"picks"`

	// Remaining lists the participants that have not picked yet, in draft order
	Remaining []string `json:"remaining"`
}

// IsComplete reports whether every participant has picked
func (s *DraftState) IsComplete() bool {
	return s.Status == DraftStatusComplete
}
