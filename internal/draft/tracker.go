// Package draft derives whose turn it is in a league's draft for a game and validates picks.
//
// Turn is never stored. It is recomputed from the ordered participants and the pick log on
// every call, so a cached "picking user" can never drift from the picks actually made.
package draft

import (
	"sort"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

// PickRequest describes a participant's attempt to claim a player
type PickRequest struct {
	// PickID and PickedAt are assigned by the caller so the result stays deterministic
	PickID   string
	PickedAt time.Time

	LeagueID      string
	GameID        string
	ParticipantID string
	PlayerID      string
}

// Order returns the participants sorted by join time, ties broken by id. The input slice is
// left untouched.
func Order(participants []*models.Participant) []*models.Participant {
	ordered := make([]*models.Participant, 0, len(participants))
	for _, p := range participants {
		if p != nil {
			ordered = append(ordered, p)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].JoinedAt.Equal(ordered[j].JoinedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
	})

	return ordered
}

// CurrentTurn returns the first participant in draft order without a pick for gameID.
// ok is false when everyone has picked.
func CurrentTurn(participants []*models.Participant, picks []*models.Pick, gameID string) (string, bool) {
	picked := pickedBy(picks, gameID)
	for _, p := range Order(participants) {
		if _, done := picked[p.ID]; !done {
			return p.ID, true
		}
	}
	return "", false
}

// IsComplete reports whether every participant has a pick for gameID
func IsComplete(participants []*models.Participant, picks []*models.Pick, gameID string) bool {
	_, ok := CurrentTurn(participants, picks, gameID)
	return !ok
}

// Derive computes the full draft state for a league's game
func Derive(leagueID string, participants []*models.Participant, picks []*models.Pick, gameID string) *models.DraftState {
	order := Order(participants)
	gamePicks := ForGame(picks, gameID)
	picked := pickedBy(gamePicks, gameID)

	state := &models.DraftState{
		LeagueID:  leagueID,
		GameID:    gameID,
		Status:    models.DraftStatusComplete,
		Order:     order,
		Picks:     gamePicks,
		Remaining: []string{},
	}

	for _, p := range order {
		if _, done := picked[p.ID]; done {
			continue
		}
		if state.CurrentTurn == "" {
			state.CurrentTurn = p.ID
			state.Status = models.DraftStatusActive
		}
		state.Remaining = append(state.Remaining, p.ID)
	}

	return state
}

// AttemptPick validates req against the draft inputs and returns the pick to record.
// Checks run in a fixed order and the first failure wins: turn, roster, player taken,
// participant already picked. Nothing passed in is modified.
func AttemptPick(req PickRequest, participants []*models.Participant, roster []*models.Player, picks []*models.Pick) (*models.Pick, error) {
	turn, ok := CurrentTurn(participants, picks, req.GameID)
	if !ok || turn != req.ParticipantID {
		return nil, ErrNotYourTurn
	}

	player := findPlayer(roster, req.PlayerID)
	if player == nil {
		return nil, ErrUnknownPlayer
	}

	for _, p := range picks {
		if p.GameID == req.GameID && p.PlayerID == req.PlayerID {
			return nil, ErrPlayerAlreadyTaken
		}
	}

	// Implied by the turn check; the store enforces it again on append
	if _, done := pickedBy(picks, req.GameID)[req.ParticipantID]; done {
		return nil, ErrAlreadyPicked
	}

	return &models.Pick{
		ID:             req.PickID,
		LeagueID:       req.LeagueID,
		GameID:         req.GameID,
		ParticipantID:  req.ParticipantID,
		PlayerID:       player.ID,
		PlayerName:     player.Name,
		PlayerNumber:   player.Number,
		PlayerPosition: player.Position,
		CreatedAt:      req.PickedAt,
	}, nil
}

// Append returns a new pick log with pick added at the end
func Append(picks []*models.Pick, pick *models.Pick) []*models.Pick {
	out := make([]*models.Pick, 0, len(picks)+1)
	out = append(out, picks...)
	return append(out, pick)
}

// ForGame returns the picks recorded for gameID, preserving their order
func ForGame(picks []*models.Pick, gameID string) []*models.Pick {
	out := make([]*models.Pick, 0, len(picks))
	for _, p := range picks {
		if p != nil && p.GameID == gameID {
			out = append(out, p)
		}
	}
	return out
}

func pickedBy(picks []*models.Pick, gameID string) map[string]struct{} {
	picked := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		if p != nil && p.GameID == gameID {
			picked[p.ParticipantID] = struct{}{}
		}
	}
	return picked
}

func findPlayer(roster []*models.Player, playerID string) *models.Player {
	for _, p := range roster {
		if p != nil && p.ID == playerID {
			return p
		}
	}
	return nil
}
