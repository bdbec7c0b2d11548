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

const activityDetailColumns = `a.id, a.user_id, a.factor_id, a.activity_date, a.consumption_value,
	a.calculated_emission, a.points_earned, a.created_at, ef.activity_name, ef.category, ef.unit`

// ActivityRepo implements domain.ActivityRepository backed by PostgreSQL.
type ActivityRepo struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

func NewActivityRepo(pool *pgxpool.Pool, statementTimeout time.Duration) *ActivityRepo {
	return &ActivityRepo{pool: pool, statementTimeout: statementTimeout}
}

// Log inserts the activity and credits the earned points to the user's
// balance in one transaction.
func (r *ActivityRepo) Log(ctx context.Context, params domain.LogActivityParams) (*domain.Activity, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback(ctx)

	if err := applyStatementTimeout(ctx, tx, r.statementTimeout); err != nil {
		return nil, mapStoreError(err)
	}

	var a domain.Activity
	err = tx.QueryRow(ctx, `
		INSERT INTO activities (user_id, factor_id, activity_date, consumption_value, calculated_emission, points_earned)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, factor_id, activity_date, consumption_value, calculated_emission, points_earned, created_at
	`, params.UserID, params.FactorID, params.ActivityDate, params.ConsumptionValue, params.CalculatedEmission, params.PointsEarned).Scan(
		&a.ID, &a.UserID, &a.FactorID, &a.ActivityDate, &a.ConsumptionValue, &a.CalculatedEmission, &a.PointsEarned, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity: %w", mapStoreError(err))
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET total_points = total_points + $1 WHERE id = $2`,
		params.PointsEarned, params.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to credit activity points: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", mapStoreError(err))
	}

	return &a, nil
}

func scanActivityDetail(rows pgx.Rows) (domain.ActivityDetail, error) {
	var d domain.ActivityDetail
	err := rows.Scan(
		&d.ID, &d.UserID, &d.FactorID, &d.ActivityDate, &d.ConsumptionValue,
		&d.CalculatedEmission, &d.PointsEarned, &d.CreatedAt,
		&d.ActivityName, &d.Category, &d.Unit,
	)
	return d, err
}

func (r *ActivityRepo) queryDetails(ctx context.Context, query string, args ...any) ([]domain.ActivityDetail, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", mapStoreError(err))
	}
	defer rows.Close()

	var details []domain.ActivityDetail
	for rows.Next() {
		d, err := scanActivityDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *ActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ActivityDetail, error) {
	return r.queryDetails(ctx, `
		SELECT `+activityDetailColumns+`
		FROM activities a
		JOIN emission_factors ef ON ef.id = a.factor_id
		WHERE a.user_id = $1
		ORDER BY a.activity_date DESC
	`, userID)
}

func (r *ActivityRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActivityDetail, error) {
	return r.queryDetails(ctx, `
		SELECT `+activityDetailColumns+`
		FROM activities a
		JOIN emission_factors ef ON ef.id = a.factor_id
		WHERE a.user_id = $1
		ORDER BY a.activity_date DESC
		LIMIT $2
	`, userID, limit)
}

func (r *ActivityRepo) ListRecentGlobal(ctx context.Context, limit int) ([]domain.AdminActivity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+activityDetailColumns+`, u.first_name, u.last_name
		FROM activities a
		JOIN emission_factors ef ON ef.id = a.factor_id
		JOIN users u ON u.id = a.user_id
		ORDER BY a.activity_date DESC, a.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activities: %w", mapStoreError(err))
	}
	defer rows.Close()

	var activities []domain.AdminActivity
	for rows.Next() {
		var a domain.AdminActivity
		err := rows.Scan(
			&a.ID, &a.UserID, &a.FactorID, &a.ActivityDate, &a.ConsumptionValue,
			&a.CalculatedEmission, &a.PointsEarned, &a.CreatedAt,
			&a.ActivityName, &a.Category, &a.Unit,
			&a.FirstName, &a.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// SumEmissions totals calculated_emission over [from, to).
func (r *ActivityRepo) SumEmissions(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(calculated_emission), 0)
		FROM activities
		WHERE user_id = $1 AND activity_date >= $2 AND activity_date < $3
	`, userID, from, to).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum emissions: %w", mapStoreError(err))
	}
	return sum, nil
}

func (r *ActivityRepo) CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]domain.CategoryBreakdown, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ef.category, COUNT(a.id), COALESCE(SUM(a.calculated_emission), 0)
		FROM activities a
		JOIN emission_factors ef ON ef.id = a.factor_id
		WHERE a.user_id = $1
		GROUP BY ef.category
		ORDER BY ef.category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category breakdown: %w", mapStoreError(err))
	}
	defer rows.Close()

	var breakdown []domain.CategoryBreakdown
	for rows.Next() {
		var b domain.CategoryBreakdown
		if err := rows.Scan(&b.Category, &b.ActivityCount, &b.TotalEmission); err != nil {
			return nil, fmt.Errorf("failed to scan category breakdown: %w", err)
		}
		breakdown = append(breakdown, b)
	}
	return breakdown, rows.Err()
}

func (r *ActivityRepo) EarnedPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	var earned int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(points_earned), 0) FROM activities WHERE user_id = $1`, userID,
	).Scan(&earned)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earned points: %w", mapStoreError(err))
	}
	return earned, nil
}

func (r *ActivityRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", mapStoreError(err))
	}
	return count, nil
}

var _ domain.ActivityRepository = (*ActivityRepo)(nil)

// FactorRepo implements domain.FactorRepository backed by PostgreSQL.
type FactorRepo struct {
	pool *pgxpool.Pool
}

func NewFactorRepo(pool *pgxpool.Pool) *FactorRepo {
	return &FactorRepo{pool: pool}
}

func (r *FactorRepo) List(ctx context.Context) ([]domain.EmissionFactor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, activity_name, category, unit, co2_per_unit
		FROM emission_factors
		ORDER BY category, activity_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list emission factors: %w", mapStoreError(err))
	}
	defer rows.Close()

	var factors []domain.EmissionFactor
	for rows.Next() {
		var f domain.EmissionFactor
		if err := rows.Scan(&f.ID, &f.ActivityName, &f.Category, &f.Unit, &f.CO2PerUnit); err != nil {
			return nil, fmt.Errorf("failed to scan emission factor: %w", err)
		}
		factors = append(factors, f)
	}
	return factors, rows.Err()
}

func (r *FactorRepo) GetByID(ctx context.Context, factorID uuid.UUID) (*domain.EmissionFactor, error) {
	var f domain.EmissionFactor
	err := r.pool.QueryRow(ctx, `
		SELECT id, activity_name, category, unit, co2_per_unit
		FROM emission_factors
		WHERE id = $1
	`, factorID).Scan(&f.ID, &f.ActivityName, &f.Category, &f.Unit, &f.CO2PerUnit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFactorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get emission factor: %w", mapStoreError(err))
	}
	return &f, nil
}
