package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

// DefaultStandardPrice is charged when neither the request nor the client
// carries a price.
var DefaultStandardPrice = decimal.RequireFromString("150.00")

type SaleService struct {
	sales         ports.SaleRepository
	clients       ports.ClientRepository
	cache         ports.StatsCache
	standardPrice decimal.Decimal
	logger        zerolog.Logger
}

// NewSaleService builds the service. A non-positive standardPrice falls back
// to DefaultStandardPrice; cache may be nil.
func NewSaleService(sales ports.SaleRepository, clients ports.ClientRepository, cache ports.StatsCache, standardPrice decimal.Decimal, logger zerolog.Logger) *SaleService {
	if !standardPrice.IsPositive() {
		standardPrice = DefaultStandardPrice
	}
	return &SaleService{
		sales:         sales,
		clients:       clients,
		cache:         cache,
		standardPrice: standardPrice,
		logger:        logger,
	}
}

func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.List(ctx)
}

// RegisterSale stores a sale. When OriginalValue is omitted the client's
// special inspection value is charged, or the standard price without one.
func (s *SaleService) RegisterSale(ctx context.Context, input ports.RegisterSaleInput) (*domain.Sale, error) {
	var client *domain.Client
	if input.ClientID != nil {
		c, err := s.clients.FindByID(ctx, *input.ClientID)
		if err != nil {
			return nil, fmt.Errorf("resolve client %d: %w", *input.ClientID, err)
		}
		client = c
	}

	original := client.PriceFor(s.standardPrice)
	if input.OriginalValue != nil {
		original = *input.OriginalValue
	}

	sale, err := s.sales.Create(ctx, domain.NewSaleInput{
		ClientID:      input.ClientID,
		ServiceName:   input.ServiceName,
		OriginalValue: original,
		DiscountValue: input.DiscountValue,
		SaleDate:      input.SaleDate,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("service_name", input.ServiceName).Msg("failed to register sale")
		return nil, err
	}
	if client != nil {
		name := client.Name
		sale.ClientName = &name
	}

	s.logger.Info().
		Int64("sale_id", sale.ID).
		Str("final_value", sale.FinalValue.StringFixed(domain.MoneyPlaces)).
		Msg("sale registered")
	invalidateStats(ctx, s.cache, s.logger)
	return sale, nil
}
