package httpapi

import (
	"errors"
	"net/http"

	tracker "github.com/KirkDiggler/lightthelamp/internal/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
)

// APIError is a custom error type for router construction errors
type APIError string

// Error implements the error interface
func (e APIError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        APIError = "config cannot be nil"
	ErrNilDraftService  APIError = "draft service cannot be nil"
	ErrNilRosterService APIError = "roster service cannot be nil"
)

// retryAfterSeconds is advertised when a store is unavailable
const retryAfterSeconds = "1"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorStatus maps service errors to a status code and a stable error code
func errorStatus(err error) (int, string) {
	var draftErr tracker.DraftError
	var serviceErr draft.ServiceError

	switch {
	case errors.Is(err, tracker.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, tracker.ErrStoreUnavailable.Code()
	case errors.Is(err, tracker.ErrUnknownPlayer):
		return http.StatusUnprocessableEntity, tracker.ErrUnknownPlayer.Code()
	case errors.As(err, &draftErr):
		return http.StatusConflict, draftErr.Code()
	case errors.Is(err, draft.ErrAlreadyMember):
		return http.StatusConflict, draft.ErrAlreadyMember.Code()
	case errors.Is(err, draft.ErrNotMember):
		return http.StatusNotFound, draft.ErrNotMember.Code()
	case errors.As(err, &serviceErr):
		return http.StatusBadRequest, serviceErr.Code()
	case errors.Is(err, roster.ErrEmptyRoster),
		errors.Is(err, roster.ErrTeamNotInGame),
		errors.Is(err, roster.ErrUnknownGame):
		return http.StatusNotFound, "roster_not_found"
	case errors.Is(err, roster.ErrNoUpcomingGame):
		return http.StatusNotFound, "no_upcoming_game"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)

	logger := requestLogger(r)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("code", code).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Str("code", code).Msg("Request rejected")
	}

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}

	message := err.Error()
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		message = http.StatusText(status)
	}
	writeJSON(w, status, &ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, &ErrorResponse{
		Error: message,
		Code:  draft.ErrInvalidInput.Code(),
	})
}
