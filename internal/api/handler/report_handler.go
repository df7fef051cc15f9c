package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// DashboardStats handles GET /api/dashboard/stats.
//
// @Summary      Dashboard counters
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dashboardStatsResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/dashboard/stats [get]
func (h *ReportHandler) DashboardStats(c echo.Context) error {
	stats, err := h.service.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardStatsResponse(stats))
}

// Discounts handles GET /api/reports/discounts.
//
// @Summary      Discount analysis
// @Tags         reports
// @Produce      json
// @Success      200  {object}  discountSummaryResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/reports/discounts [get]
func (h *ReportHandler) Discounts(c echo.Context) error {
	summary, err := h.service.DiscountSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDiscountSummaryResponse(summary))
}

// Monthly handles GET /api/reports/monthly.
//
// @Summary      Monthly performance
// @Description  One entry per calendar month (UTC) with sales, newest first.
// @Tags         reports
// @Produce      json
// @Success      200  {array}   monthlySummaryResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c echo.Context) error {
	months, err := h.service.MonthlySummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMonthlySummaryResponses(months))
}
