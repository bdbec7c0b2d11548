package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
)

const rewardColumns = `id, name, description, points_required, stock_count, created_at`

// RewardRepo implements domain.RewardRepository backed by PostgreSQL.
type RewardRepo struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

func NewRewardRepo(pool *pgxpool.Pool, statementTimeout time.Duration) *RewardRepo {
	return &RewardRepo{pool: pool, statementTimeout: statementTimeout}
}

func scanReward(row pgx.Row) (*domain.Reward, error) {
	var rw domain.Reward
	err := row.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.PointsRequired, &rw.StockCount, &rw.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepo) GetByID(ctx context.Context, rewardID uuid.UUID) (*domain.Reward, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE id = $1`, rewardID)

	reward, err := scanReward(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRewardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", mapStoreError(err))
	}
	return reward, nil
}

func (r *RewardRepo) listWhere(ctx context.Context, where string) ([]domain.Reward, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+rewardColumns+` FROM rewards `+where+` ORDER BY points_required ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", mapStoreError(err))
	}
	defer rows.Close()

	var rewards []domain.Reward
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, *reward)
	}
	return rewards, rows.Err()
}

func (r *RewardRepo) ListAvailable(ctx context.Context) ([]domain.Reward, error) {
	return r.listWhere(ctx, `WHERE stock_count > 0`)
}

func (r *RewardRepo) ListAll(ctx context.Context) ([]domain.Reward, error) {
	return r.listWhere(ctx, ``)
}

func (r *RewardRepo) Create(ctx context.Context, params domain.SaveRewardParams) (*domain.Reward, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO rewards (name, description, points_required, stock_count)
		VALUES ($1, $2, $3, $4)
		RETURNING `+rewardColumns,
		params.Name, params.Description, params.PointsRequired, params.StockCount,
	)

	reward, err := scanReward(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", mapStoreError(err))
	}
	return reward, nil
}

func (r *RewardRepo) Update(ctx context.Context, rewardID uuid.UUID, params domain.SaveRewardParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rewards
		SET name = $1, description = $2, points_required = $3, stock_count = $4
		WHERE id = $5
	`, params.Name, params.Description, params.PointsRequired, params.StockCount, rewardID)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRewardNotFound
	}
	return nil
}

// Delete removes the reward; redemptions cascade via the foreign key.
func (r *RewardRepo) Delete(ctx context.Context, rewardID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rewards WHERE id = $1`, rewardID)
	if err != nil {
		return fmt.Errorf("failed to delete reward: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRewardNotFound
	}
	return nil
}

func (r *RewardRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rewards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rewards: %w", mapStoreError(err))
	}
	return count, nil
}

// Redeem exchanges points_required for one unit of stock inside a single
// transaction. Rows are locked in a fixed order, reward then user, so
// concurrent redemptions cannot deadlock; the losing transaction blocks on
// the reward lock and re-reads the decremented stock. Any failure rolls the
// whole exchange back.
func (r *RewardRepo) Redeem(ctx context.Context, userID, rewardID uuid.UUID) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback(ctx)

	if err := applyStatementTimeout(ctx, tx, r.statementTimeout); err != nil {
		return 0, mapStoreError(err)
	}

	var pointsRequired, stockCount int
	err = tx.QueryRow(ctx,
		`SELECT points_required, stock_count FROM rewards WHERE id = $1 FOR UPDATE`, rewardID,
	).Scan(&pointsRequired, &stockCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrRewardNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock reward: %w", mapStoreError(err))
	}
	if stockCount <= 0 {
		return 0, domain.ErrRewardOutOfStock
	}

	var balance int
	err = tx.QueryRow(ctx,
		`SELECT total_points FROM users WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock user: %w", mapStoreError(err))
	}
	if balance < pointsRequired {
		return 0, domain.ErrInsufficientPoints
	}

	if _, err := tx.Exec(ctx,
		`UPDATE rewards SET stock_count = stock_count - 1 WHERE id = $1`, rewardID,
	); err != nil {
		return 0, fmt.Errorf("failed to decrement stock: %w", mapStoreError(err))
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO redemptions (user_id, reward_id, points_spent) VALUES ($1, $2, $3)`,
		userID, rewardID, pointsRequired,
	); err != nil {
		return 0, fmt.Errorf("failed to insert redemption: %w", mapStoreError(err))
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET total_points = total_points - $1 WHERE id = $2`,
		pointsRequired, userID,
	); err != nil {
		return 0, fmt.Errorf("failed to debit points: %w", mapStoreError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit redemption: %w", mapStoreError(err))
	}

	return balance - pointsRequired, nil
}

var _ domain.RewardRepository = (*RewardRepo)(nil)

// RedemptionRepo implements domain.RedemptionRepository backed by PostgreSQL.
type RedemptionRepo struct {
	pool *pgxpool.Pool
}

func NewRedemptionRepo(pool *pgxpool.Pool) *RedemptionRepo {
	return &RedemptionRepo{pool: pool}
}

func (r *RedemptionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.RedemptionDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rd.id, rd.user_id, rd.reward_id, rd.points_spent, rd.redeemed_at, rw.name, rw.description
		FROM redemptions rd
		JOIN rewards rw ON rw.id = rd.reward_id
		WHERE rd.user_id = $1
		ORDER BY rd.redeemed_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", mapStoreError(err))
	}
	defer rows.Close()

	var details []domain.RedemptionDetail
	for rows.Next() {
		var d domain.RedemptionDetail
		err := rows.Scan(&d.ID, &d.UserID, &d.RewardID, &d.PointsSpent, &d.RedeemedAt, &d.RewardName, &d.RewardDescription)
		if err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *RedemptionRepo) SpentPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	var spent int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(points_spent), 0) FROM redemptions WHERE user_id = $1`, userID,
	).Scan(&spent)
	if err != nil {
		return 0, fmt.Errorf("failed to sum spent points: %w", mapStoreError(err))
	}
	return spent, nil
}
