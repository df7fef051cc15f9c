package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse keeps the success flag envelope the front end expects:
// user and token on success, message on failure.
type loginResponse struct {
	Success bool                `json:"success"`
	User    *domain.UserSummary `json:"user,omitempty"`
	Token   string              `json:"token,omitempty"`
	Message string              `json:"message,omitempty"`
}

// --- Clients ---

type createClientRequest struct {
	Name                   string           `json:"name"                     validate:"required,max=200"`
	Email                  *string          `json:"email"                    validate:"omitempty,email"`
	Phone                  *string          `json:"phone"                    validate:"omitempty,max=40"`
	Address                *string          `json:"address"                  validate:"omitempty,max=300"`
	SpecialInspectionValue *decimal.Decimal `json:"special_inspection_value" validate:"omitnil,gte=0,lte=99999999.99"`
}

type clientResponse struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Email                  *string   `json:"email"`
	Phone                  *string   `json:"phone"`
	Address                *string   `json:"address"`
	SpecialInspectionValue *float64  `json:"special_inspection_value"`
	CreatedAt              time.Time `json:"created_at"`
}

// --- Sales ---

type createSaleRequest struct {
	ClientID    *int64 `json:"client_id"    validate:"omitnil,gt=0"`
	ServiceName string `json:"service_name" validate:"required,max=200"`
	// OriginalValue is optional; the client's special value or the standard
	// price applies when it is omitted.
	OriginalValue *decimal.Decimal `json:"original_value" validate:"omitnil,gte=0,lte=99999999.99"`
	DiscountValue decimal.Decimal  `json:"discount_value" validate:"gte=0,lte=99999999.99"`
	SaleDate      *time.Time       `json:"sale_date"`
}

type saleResponse struct {
	ID            int64     `json:"id"`
	ClientID      *int64    `json:"client_id"`
	ServiceName   string    `json:"service_name"`
	OriginalValue float64   `json:"original_value"`
	DiscountValue float64   `json:"discount_value"`
	FinalValue    float64   `json:"final_value"`
	SaleDate      time.Time `json:"sale_date"`
	ClientName    *string   `json:"client_name"`
}

// --- Reports ---

type dashboardStatsResponse struct {
	TotalClients int64   `json:"total_clients"`
	TotalSales   int64   `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
}

type discountSummaryResponse struct {
	TotalOriginal   float64 `json:"total_original"`
	TotalDiscount   float64 `json:"total_discount"`
	TotalFinal      float64 `json:"total_final"`
	DiscountedSales int64   `json:"discounted_sales"`
}

type monthlySummaryResponse struct {
	Month           string  `json:"month"`
	Sales           int64   `json:"sales"`
	DiscountedSales int64   `json:"discounted_sales"`
	TotalOriginal   float64 `json:"total_original"`
	TotalDiscount   float64 `json:"total_discount"`
	TotalFinal      float64 `json:"total_final"`
}

// --- Status ---

type statusResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}
