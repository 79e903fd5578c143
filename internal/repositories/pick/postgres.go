package pick

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/storage/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	playerConstraint      = "picks_league_game_player_key"
	participantConstraint = "picks_league_game_participant_key"
)

// PostgresConfig holds configuration for the Postgres pick repository
type PostgresConfig struct {
	DB postgres.Querier
}

type postgresRepository struct {
	db postgres.Querier
}

// NewPostgres creates a new Postgres-backed pick repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("postgres connection cannot be nil")
	}

	return &postgresRepository{
		db: cfg.DB,
	}, nil
}

// AppendPick inserts the pick; the table's unique constraints reject a second claim
func (r *postgresRepository) AppendPick(ctx context.Context, input *AppendPickInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validatePick(input.Pick); err != nil {
		return err
	}

	p := input.Pick
	_, err := r.db.Exec(ctx, `
		INSERT INTO picks (id, league_id, game_id, participant_id, player_id,
			player_name, player_number, player_position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.LeagueID, p.GameID, p.ParticipantID, p.PlayerID,
		p.PlayerName, p.PlayerNumber, p.PlayerPosition, p.CreatedAt,
	)
	if err != nil {
		if constraint, ok := postgres.ConstraintViolation(err); ok {
			switch constraint {
			case playerConstraint:
				return ErrPlayerTaken
			case participantConstraint:
				return ErrParticipantHasPick
			}
		}
		return fmt.Errorf("failed to insert pick: %w", err)
	}

	return nil
}

// ListPicks returns the picks for a league's game in insertion order
func (r *postgresRepository) ListPicks(ctx context.Context, input *ListPicksInput) (*ListPicksOutput, error) {
	if input == nil || input.LeagueID == "" || input.GameID == "" {
		return nil, errors.New("input, league ID and game ID cannot be empty")
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, league_id, game_id, participant_id, player_id,
			player_name, player_number, player_position, created_at
		FROM picks
		WHERE league_id = $1 AND game_id = $2
		ORDER BY seq`,
		input.LeagueID, input.GameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}

	picks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Pick, error) {
		var p models.Pick
		err := row.Scan(&p.ID, &p.LeagueID, &p.GameID, &p.ParticipantID, &p.PlayerID,
			&p.PlayerName, &p.PlayerNumber, &p.PlayerPosition, &p.CreatedAt)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan picks: %w", err)
	}

	return &ListPicksOutput{
		Picks: picks,
	}, nil
}
