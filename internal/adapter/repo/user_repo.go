package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"givetrack/internal/domain"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts the credential and profile row for a new account.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (id, email, name, password_hash)
VALUES (gen_random_uuid(), $1, $2, $3)
RETURNING id, email, name, password_hash, last_login_at, last_login_country, created_at, updated_at;
`, user.Email, user.Name, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// GetByID fetches a user by id.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, name, password_hash, last_login_at, last_login_country, created_at, updated_at
FROM users WHERE id = $1;
`, id)
	return scanUser(row)
}

// GetByEmail fetches a user by email.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, name, password_hash, last_login_at, last_login_country, created_at, updated_at
FROM users WHERE email = $1;
`, email)
	return scanUser(row)
}

// StampLogin records the last sign-in time and best-effort country.
func (r *UserRepositoryPG) StampLogin(ctx context.Context, id string, at time.Time, country string) error {
	_, err := r.pool.Exec(ctx, `
UPDATE users
SET last_login_at = $2, last_login_country = $3, updated_at = now()
WHERE id = $1;
`, id, at, country)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.LastLoginAt, &u.LastLoginCountry, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
