package pick

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

type draftKey struct {
	leagueID string
	gameID   string
}

// memoryRepository keeps the pick log in process. Used for local demos and tests.
type memoryRepository struct {
	mu    sync.RWMutex
	picks map[draftKey][]models.Pick
}

// NewMemory creates an in-memory pick repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		picks: make(map[draftKey][]models.Pick),
	}
}

// AppendPick records a copy of the pick
func (r *memoryRepository) AppendPick(ctx context.Context, input *AppendPickInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validatePick(input.Pick); err != nil {
		return err
	}

	p := *input.Pick
	key := draftKey{leagueID: p.LeagueID, gameID: p.GameID}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.picks[key] {
		if existing.PlayerID == p.PlayerID {
			return ErrPlayerTaken
		}
	}
	for _, existing := range r.picks[key] {
		if existing.ParticipantID == p.ParticipantID {
			return ErrParticipantHasPick
		}
	}

	r.picks[key] = append(r.picks[key], p)
	return nil
}

// ListPicks returns copies of the picks in append order
func (r *memoryRepository) ListPicks(ctx context.Context, input *ListPicksInput) (*ListPicksOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" {
		return nil, errors.New("input, league ID and game ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.picks[draftKey{leagueID: input.LeagueID, gameID: input.GameID}]
	picks := make([]*models.Pick, len(stored))
	for i := range stored {
		p := stored[i]
		picks[i] = &p
	}

	return &ListPicksOutput{
		Picks: picks,
	}, nil
}
