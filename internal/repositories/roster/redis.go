package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	rosterKeyPrefix = "roster:"
	currentGameKey  = "game:current"
)

// Config holds configuration for the Redis roster repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed roster repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetRoster retrieves the cached roster for a game
func (r *redisRepository) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	rosterJSON, err := r.client.Get(ctx, rosterKeyPrefix+input.GameID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	var players []*models.Player
	if err := json.Unmarshal(rosterJSON, &players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}

	return &GetRosterOutput{
		Players: players,
	}, nil
}

// SaveRoster caches a roster for a game
func (r *redisRepository) SaveRoster(ctx context.Context, input *SaveRosterInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	rosterJSON, err := json.Marshal(input.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	if err := r.client.Set(ctx, rosterKeyPrefix+input.GameID, rosterJSON, input.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	return nil
}

// GetCurrentGame retrieves the cached current game
func (r *redisRepository) GetCurrentGame(ctx context.Context) (*models.Game, error) {
	gameJSON, err := r.client.Get(ctx, currentGameKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal(gameJSON, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// SaveCurrentGame caches the current game
func (r *redisRepository) SaveCurrentGame(ctx context.Context, input *SaveCurrentGameInput) error {
	if input == nil || input.Game == nil || input.Game.ID == "" {
		return errors.New("input, game and game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	if err := r.client.Set(ctx, currentGameKey, gameJSON, input.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save current game: %w", err)
	}

	return nil
}
