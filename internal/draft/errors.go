package draft

import "fmt"

// DraftError is a rejection reason for a pick. Every rejection is recoverable; only
// ErrStoreUnavailable is worth retrying unchanged.
type DraftError string

// Error implements the error interface
func (e DraftError) Error() string {
	return string(e)
}

// Code returns a stable snake_case identifier for transports
func (e DraftError) Code() string {
	switch e {
	case ErrNotYourTurn:
		return "not_your_turn"
	case ErrUnknownPlayer:
		return "unknown_player"
	case ErrPlayerAlreadyTaken:
		return "player_already_taken"
	case ErrAlreadyPicked:
		return "already_picked"
	case ErrStoreUnavailable:
		return "store_unavailable"
	default:
		return "draft_error"
	}
}

const (
	ErrNotYourTurn        DraftError = "not your turn"
	ErrUnknownPlayer      DraftError = "player is not on the roster for this game"
	ErrPlayerAlreadyTaken DraftError = "player has already been picked for this game"
	ErrAlreadyPicked      DraftError = "participant has already picked for this game"
	ErrStoreUnavailable   DraftError = "draft store unavailable"
)

type storeError struct {
	op    string
	cause error
}

func (e *storeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.op, e.cause)
}

// Unwrap lets errors.Is match both ErrStoreUnavailable and the underlying cause
func (e *storeError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.cause}
}

// StoreUnavailable wraps a collaborator failure so it is reported as ErrStoreUnavailable
// without losing the cause.
func StoreUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storeError{op: op, cause: err}
}
