package ports

import (
	"context"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

// UserRepository defines the persistence operations needed for authentication.
type UserRepository interface {
	// FindActiveByUsername returns domain.ErrUserNotFound when no active user
	// carries the username.
	FindActiveByUsername(ctx context.Context, username string) (*domain.User, error)
	// InsertIfAbsent stores user unless the username is taken. created reports
	// whether a row was written; user.ID is only set when it was.
	InsertIfAbsent(ctx context.Context, user *domain.User) (created bool, err error)
}
