package membership

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key formats for Redis
	membersKeyFormat = "league:{%s}:members"
	orderKeyFormat   = "league:{%s}:order"
)

// addScript stores the member and its join score unless the member exists. Returns 0 on duplicate.
var addScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return 0
end
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[1])
return 1
`)

// removeScript drops the member from both keys. Returns 0 when it was not a member.
var removeScript = redis.NewScript(`
if redis.call('HDEL', KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call('ZREM', KEYS[2], ARGV[1])
return 1
`)

// Config holds configuration for the Redis membership repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed membership repository
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

func keys(leagueID string) []string {
	return []string{
		fmt.Sprintf(membersKeyFormat, leagueID),
		fmt.Sprintf(orderKeyFormat, leagueID),
	}
}

// AddParticipant joins a user to a league
func (r *redisRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateParticipant(input.Participant); err != nil {
		return err
	}

	p := input.Participant
	participantJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	// Equal scores fall back to member order, which is the participant ID
	added, err := addScript.Run(ctx, r.client, keys(p.LeagueID), p.ID, participantJSON, p.JoinedAt.UnixMilli()).Int()
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	if added == 0 {
		return ErrAlreadyMember
	}

	return nil
}

// RemoveParticipant removes a user from a league
func (r *redisRepository) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) error {
	if input == nil || input.LeagueID == "" || input.ParticipantID == "" {
		return errors.New("input, league ID and participant ID cannot be empty")
	}

	removed, err := removeScript.Run(ctx, r.client, keys(input.LeagueID), input.ParticipantID).Int()
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	if removed == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// GetParticipant retrieves one member of a league
func (r *redisRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.LeagueID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, league ID and participant ID cannot be empty")
	}

	membersKey := fmt.Sprintf(membersKeyFormat, input.LeagueID)
	participantJSON, err := r.client.HGet(ctx, membersKey, input.ParticipantID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	var participant models.Participant
	if err := json.Unmarshal([]byte(participantJSON), &participant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
	}

	return &participant, nil
}

// ListParticipants returns a league's members in join order
func (r *redisRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.LeagueID == "" {
		return nil, errors.New("input and league ID cannot be empty")
	}

	k := keys(input.LeagueID)
	ids, err := r.client.ZRange(ctx, k[1], 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get member order: %w", err)
	}

	if len(ids) == 0 {
		return &ListParticipantsOutput{
			Participants: []*models.Participant{},
		}, nil
	}

	values, err := r.client.HMGet(ctx, k[0], ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	participants := make([]*models.Participant, 0, len(values))
	for _, value := range values {
		// Removed between the two reads
		s, ok := value.(string)
		if !ok {
			continue
		}

		var participant models.Participant
		if err := json.Unmarshal([]byte(s), &participant); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
		}
		participants = append(participants, &participant)
	}

	return &ListParticipantsOutput{
		Participants: participants,
	}, nil
}
