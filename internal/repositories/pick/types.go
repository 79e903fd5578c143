package pick

import "github.com/KirkDiggler/lightthelamp/internal/models"

// AppendPickInput contains the pick to record
type AppendPickInput struct {
	Pick *models.Pick
}

// ListPicksInput identifies a league's draft for a game
type ListPicksInput struct {
	LeagueID string
	GameID   string
}

// ListPicksOutput contains the picks in recorded order
type ListPicksOutput struct {
	Picks []*models.Pick
}
