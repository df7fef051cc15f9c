package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

// CreateClientInput carries the fields accepted when registering a client.
type CreateClientInput struct {
	Name                   string
	Email                  *string
	Phone                  *string
	Address                *string
	SpecialInspectionValue *decimal.Decimal
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
}

// RegisterSaleInput carries a sale as submitted by an operator.
type RegisterSaleInput struct {
	ClientID    *int64
	ServiceName string
	// OriginalValue is optional; when nil the client's special value or the
	// standard service price is charged.
	OriginalValue *decimal.Decimal
	DiscountValue decimal.Decimal
	SaleDate      *time.Time
}

// SaleService defines use-case operations for sales.
type SaleService interface {
	ListSales(ctx context.Context) ([]domain.Sale, error)
	RegisterSale(ctx context.Context, input RegisterSaleInput) (*domain.Sale, error)
}

// ReportService exposes the dashboard and report aggregates.
type ReportService interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	DiscountSummary(ctx context.Context) (*domain.DiscountSummary, error)
	MonthlySummary(ctx context.Context) ([]domain.MonthlySummary, error)
}
