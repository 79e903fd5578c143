package models

import (
	"time"
)

// GameStatus represents the real-world state of an NHL game
type GameStatus string

const (
	// GameStatusScheduled indicates the game has not started
	GameStatusScheduled GameStatus = "scheduled"

	// GameStatusInProgress indicates the game is being played
	GameStatusInProgress GameStatus = "inprogress"

	// GameStatusClosed indicates the game is over
	GameStatusClosed GameStatus = "closed"
)

// Game describes the game whose roster is currently pickable
type Game struct {
	// ID is the identifier used by the roster source
	ID string `json:"id"`

	// Opponent is the name of the team being played
	Opponent string `json:"opponent"`

	// Status is the game status as reported by the source
	Status GameStatus `json:"status"`

	// StartsAt is the scheduled puck drop, zero when unknown
	StartsAt time.Time `json:"starts_at,omitempty"`

	// Source names where the descriptor came from
	Source string `json:"source"`
}
