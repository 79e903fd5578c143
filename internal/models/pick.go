package models

import (
	"time"
)

// Pick represents a participant claiming one player for a game. Picks are never modified
// once recorded.
type Pick struct {
	// ID is the unique identifier for the pick
	ID string `json:"id"`

	// LeagueID is the league the draft belongs to
	LeagueID string `json:"league_id"`

	// GameID is the game the player was picked for
	GameID string `json:"game_id"`

	// ParticipantID is the participant who made the pick
	ParticipantID string `json:"participant_id"`

	// PlayerID is the picked player's roster identifier
	PlayerID string `json:"player_id"`

	// PlayerName, PlayerNumber and PlayerPosition are copied from the roster at pick time
	PlayerName     string `json:"player_name"`
	PlayerNumber   int    `json:"player_number"`
	PlayerPosition string `json:"player_position"`

	// CreatedAt is when the pick was recorded
	CreatedAt time.Time `json:"created_at"`
}
