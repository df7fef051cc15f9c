package ports

import (
	"context"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	// List returns every client ordered by name ascending.
	List(ctx context.Context) ([]domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	// Create fails with domain.ErrClientExists when the name is taken.
	Create(ctx context.Context, client *domain.Client) error
	InsertIfAbsent(ctx context.Context, client *domain.Client) (created bool, err error)
}
