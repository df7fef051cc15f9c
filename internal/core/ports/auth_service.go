package ports

import (
	"context"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.UserSummary, error)
	Login(ctx context.Context, username, password string) (string, *domain.UserSummary, error)
}
