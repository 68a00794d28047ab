/*
Package postgres implements the account.Repository contract on PostgreSQL
using pgx. Email uniqueness is enforced by the unique index on users.email;
session tokens cascade with the user row, so account deletion is atomic.
*/
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"accountd/internal/app/account"
	"accountd/internal/app/db"
)

// Repository implements account.Repository on a pgx connection pool.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ account.Repository = (*Repository)(nil)

// CreateUser inserts a new user record.
func (r *Repository) CreateUser(ctx context.Context, u *account.User) error {
	const query = `INSERT INTO users (id, name, email, password_hash, age, avatar_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Age, u.AvatarKey, u.CreatedAt, u.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return account.ErrEmailTaken
	}
	return err
}

// GetUserByID fetches a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*account.User, error) {
	const query = `SELECT id, name, email, password_hash, age, avatar_key, created_at, updated_at
		FROM users WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetUserByEmail fetches a user by its normalized email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	const query = `SELECT id, name, email, password_hash, age, avatar_key, created_at, updated_at
		FROM users WHERE email = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// UpdateUser overwrites the stored record for u.ID.
func (r *Repository) UpdateUser(ctx context.Context, u *account.User) error {
	const query = `UPDATE users
		SET name = $2, email = $3, password_hash = $4, age = $5, avatar_key = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Age, u.AvatarKey, u.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return account.ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

// DeleteUser removes the user row; the user_tokens FK cascade removes every
// session token in the same statement.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

// AppendToken adds a session token to the end of the user's list.
func (r *Repository) AppendToken(ctx context.Context, userID, token string) error {
	const query = `INSERT INTO user_tokens (user_id, token) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, userID, token)
	return err
}

// DeleteToken removes one session token and reports whether it was present.
func (r *Repository) DeleteToken(ctx context.Context, userID, token string) (bool, error) {
	const query = `DELETE FROM user_tokens WHERE user_id = $1 AND token = $2`

	tag, err := r.pool.Exec(ctx, query, userID, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAllTokens clears the user's entire session list.
func (r *Repository) DeleteAllTokens(ctx context.Context, userID string) error {
	const query = `DELETE FROM user_tokens WHERE user_id = $1`

	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// HasToken reports whether the token is in the user's live session list.
func (r *Repository) HasToken(ctx context.Context, userID, token string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_tokens WHERE user_id = $1 AND token = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, token).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListTokens returns the user's session tokens in issue order.
func (r *Repository) ListTokens(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT token FROM user_tokens WHERE user_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *Repository) scanUser(row pgx.Row) (*account.User, error) {
	var u account.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.AvatarKey, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
