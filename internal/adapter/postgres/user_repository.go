package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
)

// userColumns must match the Scan order in scanUser.
const userColumns = `id, first_name, last_name, email, password_hash, user_type, total_points, date_joined`

// Postgres error codes used to classify failures.
const (
	pgCodeUniqueViolation = "23505"
	pgCodeUndefinedTable  = "42P01"
)

// UserRepo implements domain.UserRepository backed by PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.UserType, &u.TotalPoints, &u.DateJoined)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", mapStoreError(err))
	}
	return user, nil
}

func (r *UserRepo) GetWithStats(ctx context.Context, userID uuid.UUID) (*domain.UserWithStats, error) {
	var u domain.UserWithStats
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.first_name, u.last_name, u.email, u.password_hash, u.user_type, u.total_points, u.date_joined,
		       COUNT(a.id), COALESCE(SUM(a.calculated_emission), 0)
		FROM users u
		LEFT JOIN activities a ON a.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id
	`, userID).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.UserType, &u.TotalPoints, &u.DateJoined,
		&u.TotalActivities, &u.TotalEmission,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user with stats: %w", mapStoreError(err))
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY date_joined DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", mapStoreError(err))
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepo) Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, user_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		params.FirstName, params.LastName, params.Email, params.PasswordHash, params.UserType,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", mapStoreError(err))
	}
	return user, nil
}

func (r *UserRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", mapStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", mapStoreError(err))
	}
	return count, nil
}

// ActiveGoalCount tolerates a missing user_goals table: a deployment without
// the optional goals feature reports zero goals rather than an error.
func (r *UserRepo) ActiveGoalCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_goals WHERE user_id = $1 AND is_achieved = FALSE`, userID,
	).Scan(&count)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeUndefinedTable {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count active goals: %w", mapStoreError(err))
	}
	return count, nil
}
