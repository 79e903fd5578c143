package models

import (
	"time"
)

// DraftEventType identifies what happened in a draft
type DraftEventType string

const (
	DraftEventPickMade          DraftEventType = "pick_made"
	DraftEventDraftCompleted    DraftEventType = "draft_completed"
	DraftEventParticipantJoined DraftEventType = "participant_joined"
	DraftEventParticipantLeft   DraftEventType = "participant_left"
)

// DraftEvent is published whenever draft inputs change
type DraftEvent struct {
	ID       string         `json:"id"`
	Type     DraftEventType `json:"type"`
	LeagueID string         `json:"league_id"`

	// GameID is empty for membership events, which affect every game of the league
	GameID string `json:"game_id,omitempty"`

	Pick        *Pick        `json:"pick,omitempty"`
	Participant *Participant `json:"participant,omitempty"`

	// State is the draft state after the event, when known
	State *DraftState `json:"state,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
