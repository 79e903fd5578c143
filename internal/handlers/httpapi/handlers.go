package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 16

// JoinLeagueRequest is the body of POST /v1/leagues/{leagueID}/members
type JoinLeagueRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// MakePickRequest is the body of POST /v1/leagues/{leagueID}/games/{gameID}/picks
type MakePickRequest struct {
	ParticipantID string `json:"participant_id"`
	PlayerID      string `json:"player_id"`
}

// CurrentGameResponse wraps the game open for drafting
type CurrentGameResponse struct {
	Game *models.Game `json:"game"`
}

// RosterResponse lists a game's pickable players
type RosterResponse struct {
	GameID  string           `json:"game_id"`
	Players []*models.Player `json:"players"`
}

// MembersResponse lists a league's participants in draft order
type MembersResponse struct {
	Participants []*models.Participant `json:"participants"`
}

// ParticipantResponse wraps a single participant
type ParticipantResponse struct {
	Participant *models.Participant `json:"participant"`
}

// PicksResponse lists a game's picks in the order they were made
type PicksResponse struct {
	Picks []*models.Pick `json:"picks"`
}

// PickResponse is returned for an accepted pick
type PickResponse struct {
	Pick  *models.Pick       `json:"pick"`
	State *models.DraftState `json:"state"`
}

// Healthz handles GET /healthz
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// GetCurrentGame handles GET /v1/games/current
func (h *Handler) GetCurrentGame(w http.ResponseWriter, r *http.Request) {
	output, err := h.rosterService.CurrentGame(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &CurrentGameResponse{Game: output.Game})
}

// GetRoster handles GET /v1/games/{gameID}/roster
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	output, err := h.rosterService.GetRoster(r.Context(), &roster.GetRosterInput{
		GameID: chi.URLParam(r, "gameID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &RosterResponse{
		GameID:  output.GameID,
		Players: nonNil(output.Players),
	})
}

// ListMembers handles GET /v1/leagues/{leagueID}/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	output, err := h.draftService.ListParticipants(r.Context(), &draft.ListParticipantsInput{
		LeagueID: chi.URLParam(r, "leagueID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &MembersResponse{Participants: nonNil(output.Participants)})
}

// JoinLeague handles POST /v1/leagues/{leagueID}/members
func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	var req JoinLeagueRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	output, err := h.draftService.JoinLeague(r.Context(), &draft.JoinLeagueInput{
		LeagueID:    chi.URLParam(r, "leagueID"),
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, &ParticipantResponse{Participant: output.Participant})
}

// LeaveLeague handles DELETE /v1/leagues/{leagueID}/members/{userID}
func (h *Handler) LeaveLeague(w http.ResponseWriter, r *http.Request) {
	_, err := h.draftService.LeaveLeague(r.Context(), &draft.LeaveLeagueInput{
		LeagueID: chi.URLParam(r, "leagueID"),
		UserID:   chi.URLParam(r, "userID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDraft handles GET /v1/leagues/{leagueID}/games/{gameID}/draft
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	output, err := h.draftService.GetDraftState(r.Context(), &draft.GetDraftStateInput{
		LeagueID: chi.URLParam(r, "leagueID"),
		GameID:   chi.URLParam(r, "gameID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, output.State)
}

// ListPicks handles GET /v1/leagues/{leagueID}/games/{gameID}/picks
func (h *Handler) ListPicks(w http.ResponseWriter, r *http.Request) {
	output, err := h.draftService.ListPicks(r.Context(), &draft.ListPicksInput{
		LeagueID: chi.URLParam(r, "leagueID"),
		GameID:   chi.URLParam(r, "gameID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &PicksResponse{Picks: nonNil(output.Picks)})
}

// MakePick handles POST /v1/leagues/{leagueID}/games/{gameID}/picks
func (h *Handler) MakePick(w http.ResponseWriter, r *http.Request) {
	var req MakePickRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	output, err := h.draftService.AttemptPick(r.Context(), &draft.AttemptPickInput{
		LeagueID:      chi.URLParam(r, "leagueID"),
		GameID:        chi.URLParam(r, "gameID"),
		ParticipantID: req.ParticipantID,
		PlayerID:      req.PlayerID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, &PickResponse{
		Pick:  output.Pick,
		State: output.State,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// nonNil keeps empty lists encoded as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
