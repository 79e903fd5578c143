package pick

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Keys share a hash tag so the append script stays on one cluster slot
	pickLogKeyFormat          = "draft:{%s}:picks"
	pickPlayersKeyFormat      = "draft:{%s}:players"
	pickParticipantsKeyFormat = "draft:{%s}:participants"
)

// draftTag identifies a league's game. The league id is length-prefixed so ids containing
// separators cannot collide.
func draftTag(leagueID, gameID string) string {
	return fmt.Sprintf("%d:%s:%s", len(leagueID), leagueID, gameID)
}

// appendPickScript claims the player and the participant's turn and appends the pick in one
// step. Returns -1 when the player is taken, -2 when the participant already picked.
var appendPickScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[2], ARGV[1]) == 1 then
	return -1
end
if redis.call('HEXISTS', KEYS[3], ARGV[2]) == 1 then
	return -2
end
redis.call('HSET', KEYS[2], ARGV[1], ARGV[3])
redis.call('HSET', KEYS[3], ARGV[2], ARGV[3])
redis.call('RPUSH', KEYS[1], ARGV[4])
return 1
`)

// Config holds configuration for the Redis pick repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed pick repository
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

// AppendPick records a pick unless the player or the participant is already in the draft
func (r *redisRepository) AppendPick(ctx context.Context, input *AppendPickInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validatePick(input.Pick); err != nil {
		return err
	}

	p := input.Pick
	pickJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal pick: %w", err)
	}

	tag := draftTag(p.LeagueID, p.GameID)
	keys := []string{
		fmt.Sprintf(pickLogKeyFormat, tag),
		fmt.Sprintf(pickPlayersKeyFormat, tag),
		fmt.Sprintf(pickParticipantsKeyFormat, tag),
	}

	result, err := appendPickScript.Run(ctx, r.client, keys, p.PlayerID, p.ParticipantID, p.ID, pickJSON).Int()
	if err != nil {
		return fmt.Errorf("failed to append pick: %w", err)
	}

	switch result {
	case -1:
		return ErrPlayerTaken
	case -2:
		return ErrParticipantHasPick
	}

	return nil
}

// ListPicks returns the picks for a league's game in the order they were appended
func (r *redisRepository) ListPicks(ctx context.Context, input *ListPicksInput) (*ListPicksOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" {
		return nil, errors.New("input, league ID and game ID cannot be empty")
	}

	logKey := fmt.Sprintf(pickLogKeyFormat, draftTag(input.LeagueID, input.GameID))
	entries, err := r.client.LRange(ctx, logKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}

	picks := make([]*models.Pick, 0, len(entries))
	for _, entry := range entries {
		var p models.Pick
		if err := json.Unmarshal([]byte(entry), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pick: %w", err)
		}
		picks = append(picks, &p)
	}

	return &ListPicksOutput{
		Picks: picks,
	}, nil
}
