package membership

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

// memoryRepository keeps league members in process
type memoryRepository struct {
	mu      sync.RWMutex
	leagues map[string]map[string]models.Participant
}

// NewMemory creates an in-memory membership repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		leagues: make(map[string]map[string]models.Participant),
	}
}

func (r *memoryRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateParticipant(input.Participant); err != nil {
		return err
	}

	p := *input.Participant

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.leagues[p.LeagueID]
	if !ok {
		members = make(map[string]models.Participant)
		r.leagues[p.LeagueID] = members
	}
	if _, exists := members[p.ID]; exists {
		return ErrAlreadyMember
	}
	members[p.ID] = p

	return nil
}

func (r *memoryRepository) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) error {
	if input == nil || input.LeagueID == "" || input.ParticipantID == "" {
		return errors.New("input, league ID and participant ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.leagues[input.LeagueID]
	if _, exists := members[input.ParticipantID]; !exists {
		return ErrParticipantNotFound
	}
	delete(members, input.ParticipantID)

	return nil
}

func (r *memoryRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.LeagueID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, league ID and participant ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.leagues[input.LeagueID][input.ParticipantID]
	if !exists {
		return nil, ErrParticipantNotFound
	}

	return &p, nil
}

func (r *memoryRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.LeagueID == "" {
		return nil, errors.New("input and league ID cannot be empty")
	}

	r.mu.RLock()
	participants := make([]*models.Participant, 0, len(r.leagues[input.LeagueID]))
	for _, p := range r.leagues[input.LeagueID] {
		participants = append(participants, &p)
	}
	r.mu.RUnlock()

	slices.SortFunc(participants, func(a, b *models.Participant) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return &ListParticipantsOutput{
		Participants: participants,
	}, nil
}
