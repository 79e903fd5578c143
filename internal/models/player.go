package models

// Player represents an NHL player that can be picked for a game
type Player struct {
	// ID is unique within a game's roster
	ID string `json:"id"`

	// Name is the player's full name
	Name string `json:"name"`

	// Number is the jersey number
	Number int `json:"number"`

	// Position is the player's position (C, LW, RW, D, G)
	Position string `json:"position"`

	// Stats holds the player's line for the game when the source provides one
	Stats *PlayerStats `json:"stats,omitempty"`
}

// PlayerStats is a player's statistical line for a single game
type PlayerStats struct {
	Goals        int `json:"goals"`
	Assists      int `json:"assists"`
	Points       int `json:"points"`
	Shots        int `json:"shots,omitempty"`
	Hits         int `json:"hits,omitempty"`
	Blocks       int `json:"blocks,omitempty"`
	Saves        int `json:"saves,omitempty"`
	ShotsAgainst int `json:"shots_against,omitempty"`
}
