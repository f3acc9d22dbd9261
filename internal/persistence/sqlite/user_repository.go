package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/worktime-backend/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	storage *Storage
}

// NewUserRepository wires a user repository to the shared storage handle.
func NewUserRepository(storage *Storage) *UserRepository {
	return &UserRepository{storage: storage}
}

// CreateUser inserts a new user. Username and email collisions surface as
// persistence.ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	return r.storage.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			user.ID,
			user.Username,
			strings.ToLower(strings.TrimSpace(user.Email)),
			user.PasswordHash,
			user.Role,
			formatDateTime(user.CreatedAt),
			formatDateTime(user.UpdatedAt),
		)
		return mapError(err)
	})
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if id == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = ?
	`
	return r.scanUser(r.storage.db.QueryRowContext(ctx, query, id))
}

// GetUserByUsername retrieves a user by exact username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	if username == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM users WHERE username = ?
	`
	return r.scanUser(r.storage.db.QueryRowContext(ctx, query, username))
}

// UserExists reports whether a user row exists for the given ID.
func (r *UserRepository) UserExists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	var count int
	err := r.storage.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// DeleteUser removes a user; dependent rows cascade.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	return r.storage.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

func (r *UserRepository) scanUser(row *sql.Row) (persistence.User, error) {
	var (
		user      persistence.User
		createdAt string
		updatedAt string
	)

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, mapError(err)
	}

	if user.CreatedAt, err = parseDateTime(createdAt); err != nil {
		return persistence.User{}, fmt.Errorf("parse created_at: %w", err)
	}
	if user.UpdatedAt, err = parseDateTime(updatedAt); err != nil {
		return persistence.User{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return user, nil
}

var _ persistence.UserRepository = (*UserRepository)(nil)
