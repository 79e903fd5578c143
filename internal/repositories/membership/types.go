package membership

import "github.com/KirkDiggler/lightthelamp/internal/models"

// AddParticipantInput contains the new member
type AddParticipantInput struct {
	Participant *models.Participant
}

// RemoveParticipantInput identifies the member leaving
type RemoveParticipantInput struct {
	LeagueID      string
	ParticipantID string
}

// GetParticipantInput identifies a member
type GetParticipantInput struct {
	LeagueID      string
	ParticipantID string
}

// ListParticipantsInput contains parameters for listing a league's members
type ListParticipantsInput struct {
	LeagueID string
}

// ListParticipantsOutput contains the members in draft order
type ListParticipantsOutput struct {
	Participants []*models.Participant
}
