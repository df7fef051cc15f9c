package ports

import (
	"context"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

// SaleRepository defines persistence operations for sales.
type SaleRepository interface {
	// List returns every sale, newest sale_date first, with ClientName resolved.
	List(ctx context.Context) ([]domain.Sale, error)
	// Create validates and derives the sale through domain.NewSale before
	// writing it.
	Create(ctx context.Context, input domain.NewSaleInput) (*domain.Sale, error)
}

// ReportRepository computes aggregates straight from the store.
type ReportRepository interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	DiscountSummary(ctx context.Context) (*domain.DiscountSummary, error)
	// MonthlySummary returns one entry per month with sales, newest first.
	MonthlySummary(ctx context.Context) ([]domain.MonthlySummary, error)
}

// StatsCache keeps a short-lived copy of the dashboard counters.
type StatsCache interface {
	// Get reports found=false on a miss. gen names the cache generation the
	// lookup saw; a caller filling the miss hands it back to Set.
	Get(ctx context.Context) (stats *domain.DashboardStats, gen int64, found bool, err error)
	// Set stores stats under gen. Entries from a generation older than the
	// last Invalidate are never served.
	Set(ctx context.Context, gen int64, stats *domain.DashboardStats) error
	// Invalidate starts a new generation.
	Invalidate(ctx context.Context) error
}
