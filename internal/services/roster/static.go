package roster

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

// StaticGameID identifies the game served by the static source
const StaticGameID = "static-red-wings"

// staticSource serves a fixed Red Wings lineup for demos and offline use
type staticSource struct {
	game    models.Game
	players []models.Player
}

// NewStaticSource creates a Source that never changes
func NewStaticSource() *staticSource {
	return &staticSource{
		game: models.Game{
			ID:       StaticGameID,
			Opponent: "Buffalo Sabres",
			Status:   models.GameStatusInProgress,
			Source:   "static",
		},
		players: []models.Player{
			skater("Dylan Larkin", 71, "C", 1, 1),
			skater("Lucas Raymond", 23, "RW", 0, 2),
			skater("Alex DeBrincat", 93, "LW", 2, 0),
			skater("Moritz Seider", 53, "D", 0, 1),
			skater("Jake Walman", 96, "D", 0, 0),
			{
				ID:       playerID(34),
				Name:     "Alex Lyon",
				Number:   34,
				Position: "G",
				Stats:    &models.PlayerStats{Saves: 24, ShotsAgainst: 26},
			},
			skater("Andrew Copp", 18, "C", 1, 0),
			skater("J.T. Compher", 37, "C", 0, 1),
			skater("David Perron", 57, "LW", 0, 1),
			skater("Ben Chiarot", 8, "D", 0, 0),
			skater("Olli Määttä", 2, "D", 0, 0),
			skater("Michael Rasmussen", 27, "C", 0, 0),
		},
	}
}

func playerID(number int) string {
	return fmt.Sprintf("det-%d", number)
}

func skater(name string, number int, position string, goals, assists int) models.Player {
	return models.Player{
		ID:       playerID(number),
		Name:     name,
		Number:   number,
		Position: position,
		Stats: &models.PlayerStats{
			Goals:   goals,
			Assists: assists,
			Points:  goals + assists,
		},
	}
}

func (s *staticSource) Name() string {
	return "static"
}

func (s *staticSource) CurrentGame(ctx context.Context) (*models.Game, error) {
	game := s.game
	return &game, nil
}

// Roster returns the fixed lineup for the static game and nothing for any other
func (s *staticSource) Roster(ctx context.Context, gameID string) ([]*models.Player, error) {
	if gameID != s.game.ID {
		return nil, nil
	}

	players := make([]*models.Player, len(s.players))
	for i := range s.players {
		p := s.players[i]
		if p.Stats != nil {
			stats := *p.Stats
			p.Stats = &stats
		}
		players[i] = &p
	}
	return players, nil
}
