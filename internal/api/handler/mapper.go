package handler

import (
	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateClientInput(req createClientRequest) ports.CreateClientInput {
	return ports.CreateClientInput{
		Name:                   req.Name,
		Email:                  req.Email,
		Phone:                  req.Phone,
		Address:                req.Address,
		SpecialInspectionValue: req.SpecialInspectionValue,
	}
}

func toRegisterSaleInput(req createSaleRequest) ports.RegisterSaleInput {
	return ports.RegisterSaleInput{
		ClientID:      req.ClientID,
		ServiceName:   req.ServiceName,
		OriginalValue: req.OriginalValue,
		DiscountValue: req.DiscountValue,
		SaleDate:      req.SaleDate,
	}
}

// --- Domain → HTTP response ---

// money renders an amount as a JSON number rounded to cents.
func money(d decimal.Decimal) float64 {
	return d.Round(domain.MoneyPlaces).InexactFloat64()
}

func toClientResponse(c domain.Client) clientResponse {
	resp := clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.UTC(),
	}
	if c.SpecialInspectionValue.Valid {
		v := money(c.SpecialInspectionValue.Decimal)
		resp.SpecialInspectionValue = &v
	}
	return resp
}

func toClientResponses(clients []domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out
}

func toSaleResponse(s domain.Sale) saleResponse {
	return saleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		ServiceName:   s.ServiceName,
		OriginalValue: money(s.OriginalValue),
		DiscountValue: money(s.DiscountValue),
		FinalValue:    money(s.FinalValue),
		SaleDate:      s.SaleDate.UTC(),
		ClientName:    s.ClientName,
	}
}

func toSaleResponses(sales []domain.Sale) []saleResponse {
	out := make([]saleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out
}

func toDashboardStatsResponse(s *domain.DashboardStats) dashboardStatsResponse {
	return dashboardStatsResponse{
		TotalClients: s.TotalClients,
		TotalSales:   s.TotalSales,
		TotalRevenue: money(s.TotalRevenue),
	}
}

func toDiscountSummaryResponse(s *domain.DiscountSummary) discountSummaryResponse {
	return discountSummaryResponse{
		TotalOriginal:   money(s.TotalOriginal),
		TotalDiscount:   money(s.TotalDiscount),
		TotalFinal:      money(s.TotalFinal),
		DiscountedSales: s.DiscountedSales,
	}
}

func toMonthlySummaryResponses(months []domain.MonthlySummary) []monthlySummaryResponse {
	out := make([]monthlySummaryResponse, 0, len(months))
	for _, m := range months {
		out = append(out, monthlySummaryResponse{
			Month:           m.Month,
			Sales:           m.Sales,
			DiscountedSales: m.DiscountedSales,
			TotalOriginal:   money(m.TotalOriginal),
			TotalDiscount:   money(m.TotalDiscount),
			TotalFinal:      money(m.TotalFinal),
		})
	}
	return out
}
