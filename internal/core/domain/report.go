package domain

import "github.com/shopspring/decimal"

// DashboardStats holds the counters shown on the dashboard.
type DashboardStats struct {
	TotalClients int64           `json:"total_clients"`
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DiscountSummary compares what was charged against list prices.
type DiscountSummary struct {
	TotalOriginal   decimal.Decimal
	TotalDiscount   decimal.Decimal
	TotalFinal      decimal.Decimal
	DiscountedSales int64
}

// MonthlySummary aggregates the sales of one calendar month (UTC), keyed as
// YYYY-MM.
type MonthlySummary struct {
	Month           string
	Sales           int64
	DiscountedSales int64
	TotalOriginal   decimal.Decimal
	TotalDiscount   decimal.Decimal
	TotalFinal      decimal.Decimal
}
