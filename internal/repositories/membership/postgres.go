package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/storage/postgres"
	"github.com/jackc/pgx/v5"
)

const membershipConstraint = "league_memberships_pkey"

// PostgresConfig holds configuration for the Postgres membership repository
type PostgresConfig struct {
	DB postgres.Querier
}

type postgresRepository struct {
	db postgres.Querier
}

// NewPostgres creates a new Postgres-backed membership repository
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

func (r *postgresRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateParticipant(input.Participant); err != nil {
		return err
	}

	p := input.Participant
	_, err := r.db.Exec(ctx, `
		INSERT INTO league_memberships (league_id, user_id, display_name, joined_at)
		VALUES ($1, $2, $3, $4)`,
		p.LeagueID, p.ID, p.DisplayName, p.JoinedAt,
	)
	if err != nil {
		if constraint, ok := postgres.ConstraintViolation(err); ok && constraint == membershipConstraint {
			return ErrAlreadyMember
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	return nil
}

func (r *postgresRepository) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) error {
	if input == nil || input.LeagueID == "" || input.ParticipantID == "" {
		return errors.New("input, league ID and participant ID cannot be empty")
	}

	tag, err := r.db.Exec(ctx,
		`DELETE FROM league_memberships WHERE league_id = $1 AND user_id = $2`,
		input.LeagueID, input.ParticipantID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

func (r *postgresRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.LeagueID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, league ID and participant ID cannot be empty")
	}

	var p models.Participant
	err := r.db.QueryRow(ctx, `
		SELECT user_id, league_id, display_name, joined_at
		FROM league_memberships
		WHERE league_id = $1 AND user_id = $2`,
		input.LeagueID, input.ParticipantID,
	).Scan(&p.ID, &p.LeagueID, &p.DisplayName, &p.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.LeagueID == "" {
		return nil, errors.New("input and league ID cannot be empty")
	}

	rows, err := r.db.Query(ctx, `
		SELECT user_id, league_id, display_name, joined_at
		FROM league_memberships
		WHERE league_id = $1
		ORDER BY joined_at, user_id`,
		input.LeagueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}

	participants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Participant, error) {
		var p models.Participant
		err := row.Scan(&p.ID, &p.LeagueID, &p.DisplayName, &p.JoinedAt)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan memberships: %w", err)
	}

	return &ListParticipantsOutput{
		Participants: participants,
	}, nil
}
