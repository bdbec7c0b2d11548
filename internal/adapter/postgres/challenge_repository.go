package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
)

const challengeColumns = `id, name, description, category, target_reduction, reward_points,
	start_date, end_date, is_active, participant_count`

// ChallengeRepo implements domain.ChallengeRepository backed by PostgreSQL.
type ChallengeRepo struct {
	pool *pgxpool.Pool
}

func NewChallengeRepo(pool *pgxpool.Pool) *ChallengeRepo {
	return &ChallengeRepo{pool: pool}
}

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var c domain.Challenge
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Category, &c.TargetReduction, &c.RewardPoints,
		&c.StartDate, &c.EndDate, &c.IsActive, &c.ParticipantCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChallengeRepo) List(ctx context.Context) ([]domain.Challenge, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+challengeColumns+` FROM challenges ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", mapStoreError(err))
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

func (r *ChallengeRepo) Create(ctx context.Context, params domain.SaveChallengeParams) (*domain.Challenge, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO challenges (name, description, category, target_reduction, reward_points, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+challengeColumns,
		params.Name, params.Description, params.Category, params.TargetReduction,
		params.RewardPoints, params.StartDate, params.EndDate, params.IsActive,
	)

	challenge, err := scanChallenge(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", mapStoreError(err))
	}
	return challenge, nil
}

func (r *ChallengeRepo) Update(ctx context.Context, challengeID uuid.UUID, params domain.SaveChallengeParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE challenges
		SET name = $1, description = $2, category = $3, target_reduction = $4,
		    reward_points = $5, start_date = $6, end_date = $7, is_active = $8
		WHERE id = $9
	`, params.Name, params.Description, params.Category, params.TargetReduction,
		params.RewardPoints, params.StartDate, params.EndDate, params.IsActive, challengeID)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (r *ChallengeRepo) Delete(ctx context.Context, challengeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, challengeID)
	if err != nil {
		return fmt.Errorf("failed to delete challenge: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (r *ChallengeRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM challenges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count challenges: %w", mapStoreError(err))
	}
	return count, nil
}
