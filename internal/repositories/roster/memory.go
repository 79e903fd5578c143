package roster

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/common/clock"
	"github.com/KirkDiggler/lightthelamp/internal/models"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// memoryRepository caches rosters in process, expiring entries lazily on read
type memoryRepository struct {
	clock clock.Clock

	mu      sync.RWMutex
	rosters map[string]entry[[]models.Player]
	current *entry[models.Game]
}

// NewMemory creates an in-memory roster repository
func NewMemory(clk clock.Clock) *memoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &memoryRepository{
		clock:   clk,
		rosters: make(map[string]entry[[]models.Player]),
	}
}

func (r *memoryRepository) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return r.clock.Now().Add(ttl)
}

func (r *memoryRepository) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	r.mu.RLock()
	e, ok := r.rosters[input.GameID]
	r.mu.RUnlock()

	if !ok || e.expired(r.clock.Now()) {
		return nil, ErrRosterNotFound
	}

	players := make([]*models.Player, len(e.value))
	for i := range e.value {
		p := e.value[i]
		players[i] = &p
	}

	return &GetRosterOutput{
		Players: players,
	}, nil
}

func (r *memoryRepository) SaveRoster(ctx context.Context, input *SaveRosterInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	players := make([]models.Player, 0, len(input.Players))
	for _, p := range input.Players {
		if p != nil {
			players = append(players, *p)
		}
	}

	r.mu.Lock()
	r.rosters[input.GameID] = entry[[]models.Player]{value: players, expiresAt: r.expiry(input.TTL)}
	r.mu.Unlock()

	return nil
}

func (r *memoryRepository) GetCurrentGame(ctx context.Context) (*models.Game, error) {
	r.mu.RLock()
	e := r.current
	r.mu.RUnlock()

	if e == nil || e.expired(r.clock.Now()) {
		return nil, ErrGameNotFound
	}

	game := e.value
	return &game, nil
}

func (r *memoryRepository) SaveCurrentGame(ctx context.Context, input *SaveCurrentGameInput) error {
	if input == nil || input.Game == nil || input.Game.ID == "" {
		return errors.New("input, game and game ID cannot be empty")
	}

	r.mu.Lock()
	r.current = &entry[models.Game]{value: *input.Game, expiresAt: r.expiry(input.TTL)}
	r.mu.Unlock()

	return nil
}
