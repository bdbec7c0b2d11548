package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
)

// AwardRepo implements domain.AwardRepository backed by PostgreSQL.
type AwardRepo struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

func NewAwardRepo(pool *pgxpool.Pool, statementTimeout time.Duration) *AwardRepo {
	return &AwardRepo{pool: pool, statementTimeout: statementTimeout}
}

// Grant records the weekly award and credits the points in one transaction.
// The primary key on (user_id, week_key) makes the credit idempotent per
// week: a second grant in the same week inserts nothing and mutates nothing.
func (r *AwardRepo) Grant(ctx context.Context, userID uuid.UUID, weekKey string, points int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback(ctx)

	if err := applyStatementTimeout(ctx, tx, r.statementTimeout); err != nil {
		return mapStoreError(err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO weekly_awards (user_id, week_key, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, week_key) DO NOTHING
	`, userID, weekKey, points)
	if err != nil {
		return fmt.Errorf("failed to record weekly award: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAwardAlreadyGranted
	}

	tag, err = tx.Exec(ctx,
		`UPDATE users SET total_points = total_points + $1 WHERE id = $2`,
		points, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to credit weekly award: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit weekly award: %w", mapStoreError(err))
	}
	return nil
}

func (r *AwardRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WeeklyAward, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, week_key, points, awarded_at
		FROM weekly_awards
		WHERE user_id = $1
		ORDER BY awarded_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly awards: %w", mapStoreError(err))
	}
	defer rows.Close()

	var awards []domain.WeeklyAward
	for rows.Next() {
		var a domain.WeeklyAward
		if err := rows.Scan(&a.UserID, &a.WeekKey, &a.Points, &a.AwardedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weekly award: %w", err)
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}
