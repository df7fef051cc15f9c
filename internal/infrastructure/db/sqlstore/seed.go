package sqlstore

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

// Seed describes the rows Initialize guarantees exist.
type Seed struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
	Clients       []domain.Client
}

// InitResult reports how many seed rows were actually created.
type InitResult struct {
	UsersCreated   int
	ClientsCreated int
}

// DefaultSeed returns the admin account and sample clients shipped with the
// application.
func DefaultSeed() Seed {
	return Seed{
		AdminUsername: domain.DefaultAdminUsername,
		AdminPassword: "admin123",
		AdminEmail:    "admin@sistema.com",
		Clients:       DefaultClients(),
	}
}

func DefaultClients() []domain.Client {
	str := func(s string) *string { return &s }
	money := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

	return []domain.Client{
		{Name: "João Silva", Email: str("joao@email.com"), Phone: str("(11) 99999-9999"), Address: str("Rua A, 123"), SpecialInspectionValue: money("120.00")},
		{Name: "Maria Santos", Email: str("maria@email.com"), Phone: str("(11) 88888-8888"), Address: str("Rua B, 456"), SpecialInspectionValue: money("130.00")},
		{Name: "Pedro Oliveira", SpecialInspectionValue: money("110.00")},
	}
}

// Initialize creates the schema when missing and inserts the seed rows that
// are not present yet. Calling it again is a no-op.
func (s *Store) Initialize(ctx context.Context, seed Seed) (*InitResult, error) {
	if err := s.createSchema(ctx); err != nil {
		return nil, err
	}
	if err := s.checkSchema(ctx); err != nil {
		return nil, err
	}

	res := &InitResult{}

	if seed.AdminUsername != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		admin := &domain.User{
			Username:     seed.AdminUsername,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if seed.AdminEmail != "" {
			admin.Email = &seed.AdminEmail
		}

		created, err := NewUserRepository(s).InsertIfAbsent(ctx, admin)
		if err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		if created {
			res.UsersCreated++
		}
	}

	clients := NewClientRepository(s)
	for i := range seed.Clients {
		c := seed.Clients[i]
		created, err := clients.InsertIfAbsent(ctx, &c)
		if err != nil {
			return nil, fmt.Errorf("seed client %q: %w", c.Name, err)
		}
		if created {
			res.ClientsCreated++
		}
	}

	s.log.Info().
		Int("users_created", res.UsersCreated).
		Int("clients_created", res.ClientsCreated).
		Msg("store initialized")

	return res, nil
}
