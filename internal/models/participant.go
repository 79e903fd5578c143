package models

import (
	"time"
)

// Participant represents a user's membership in a league
type Participant struct {
	// ID is the opaque user identifier of the participant
	ID string `json:"id"`

	// LeagueID is the league the participant belongs to
	LeagueID string `json:"league_id"`

	// DisplayName is the name shown to other league members
	DisplayName string `json:"display_name"`

	// JoinedAt is when the participant joined the league. It defines draft order.
	JoinedAt time.Time `json:"joined_at"`
}
