package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

type userRow struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Email        sql.NullString `db:"email"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Email:        stringPtr(r.Email),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func (r *UserRepository) FindActiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT id, username, password_hash, email, is_active, created_at
		FROM users
		WHERE username = ? AND is_active = ?`

	var row userRow
	if err := r.store.db.GetContext(ctx, &row, r.store.rebind(q), username, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrapErr("find user", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) InsertIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	const q = `
		INSERT INTO users (username, password_hash, email, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	var id int64
	err := r.store.db.QueryRowxContext(ctx, r.store.rebind(q),
		user.Username,
		user.PasswordHash,
		nullString(user.Email),
		user.IsActive,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, wrapErr("insert user", err)
	}

	user.ID = id
	return true, nil
}
