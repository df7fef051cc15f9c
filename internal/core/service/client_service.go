package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

type ClientService struct {
	repo   ports.ClientRepository
	cache  ports.StatsCache
	logger zerolog.Logger
}

// NewClientService builds the service. cache may be nil.
func NewClientService(repo ports.ClientRepository, cache ports.StatsCache, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, cache: cache, logger: logger}
}

func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if input.SpecialInspectionValue != nil {
		client.SpecialInspectionValue = decimal.NewNullDecimal(input.SpecialInspectionValue.Round(domain.MoneyPlaces))
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, client); err != nil {
		s.logger.Warn().Err(err).Str("name", client.Name).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().Int64("client_id", client.ID).Str("name", client.Name).Msg("client created")
	invalidateStats(ctx, s.cache, s.logger)
	return client, nil
}

// invalidateStats drops the cached dashboard counters after a write. Failures
// only cost freshness until the entry expires.
func invalidateStats(ctx context.Context, cache ports.StatsCache, logger zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("stats cache invalidate failed")
	}
}
