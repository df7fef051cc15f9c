package sqlstore

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

type ReportRepository struct {
	store *Store
}

func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

type statsRow struct {
	TotalClients int64           `db:"total_clients"`
	TotalSales   int64           `db:"total_sales"`
	TotalRevenue decimal.Decimal `db:"total_revenue"`
}

// DashboardStats counts clients and sales and sums final values. The sum
// over no sales is zero.
func (r *ReportRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM clients)                       AS total_clients,
			(SELECT COUNT(*) FROM sales)                         AS total_sales,
			COALESCE((SELECT SUM(final_value) FROM sales), 0)    AS total_revenue`

	var row statsRow
	if err := r.store.db.GetContext(ctx, &row, q); err != nil {
		return nil, wrapErr("dashboard stats", err)
	}
	return &domain.DashboardStats{
		TotalClients: row.TotalClients,
		TotalSales:   row.TotalSales,
		TotalRevenue: row.TotalRevenue.Round(domain.MoneyPlaces),
	}, nil
}

type discountRow struct {
	TotalOriginal   decimal.Decimal `db:"total_original"`
	TotalDiscount   decimal.Decimal `db:"total_discount"`
	TotalFinal      decimal.Decimal `db:"total_final"`
	DiscountedSales int64           `db:"discounted_sales"`
}

func (r *ReportRepository) DiscountSummary(ctx context.Context) (*domain.DiscountSummary, error) {
	const q = `
		SELECT
			COALESCE(SUM(original_value), 0)                  AS total_original,
			COALESCE(SUM(discount_value), 0)                  AS total_discount,
			COALESCE(SUM(final_value), 0)                     AS total_final,
			COUNT(CASE WHEN discount_value > 0 THEN 1 END)    AS discounted_sales
		FROM sales`

	var row discountRow
	if err := r.store.db.GetContext(ctx, &row, q); err != nil {
		return nil, wrapErr("discount summary", err)
	}
	return &domain.DiscountSummary{
		TotalOriginal:   row.TotalOriginal.Round(domain.MoneyPlaces),
		TotalDiscount:   row.TotalDiscount.Round(domain.MoneyPlaces),
		TotalFinal:      row.TotalFinal.Round(domain.MoneyPlaces),
		DiscountedSales: row.DiscountedSales,
	}, nil
}

type monthlyRow struct {
	Month           string          `db:"month"`
	Sales           int64           `db:"sales"`
	DiscountedSales int64           `db:"discounted_sales"`
	TotalOriginal   decimal.Decimal `db:"total_original"`
	TotalDiscount   decimal.Decimal `db:"total_discount"`
	TotalFinal      decimal.Decimal `db:"total_final"`
}

// MonthlySummary groups sales by the calendar month of sale_date.
func (r *ReportRepository) MonthlySummary(ctx context.Context) ([]domain.MonthlySummary, error) {
	q := `
		SELECT
			` + r.store.monthOf("sale_date") + `                   AS month,
			COUNT(*)                                          AS sales,
			COUNT(CASE WHEN discount_value > 0 THEN 1 END)    AS discounted_sales,
			COALESCE(SUM(original_value), 0)                  AS total_original,
			COALESCE(SUM(discount_value), 0)                  AS total_discount,
			COALESCE(SUM(final_value), 0)                     AS total_final
		FROM sales
		GROUP BY month
		ORDER BY month DESC`

	var rows []monthlyRow
	if err := r.store.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, wrapErr("monthly summary", err)
	}

	out := make([]domain.MonthlySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.MonthlySummary{
			Month:           row.Month,
			Sales:           row.Sales,
			DiscountedSales: row.DiscountedSales,
			TotalOriginal:   row.TotalOriginal.Round(domain.MoneyPlaces),
			TotalDiscount:   row.TotalDiscount.Round(domain.MoneyPlaces),
			TotalFinal:      row.TotalFinal.Round(domain.MoneyPlaces),
		})
	}
	return out, nil
}
