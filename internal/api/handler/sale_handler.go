package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestao-empresarial/management-system/internal/api/metrics"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

// SaleHandler handles HTTP requests for sale operations.
type SaleHandler struct {
	service ports.SaleService
	metrics *metrics.Metrics
}

func NewSaleHandler(service ports.SaleService, m *metrics.Metrics) *SaleHandler {
	return &SaleHandler{service: service, metrics: m}
}

// List handles GET /api/sales. Sales come newest first with the client name
// resolved; client_name is null when the sale has no client.
//
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Success      200  {array}   saleResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.service.ListSales(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSaleResponses(sales))
}

// Create handles POST /api/sales. final_value is always derived.
//
// @Summary      Register a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSaleRequest  true  "Sale"
// @Success      201   {object}  saleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c echo.Context) error {
	if err := requireOperator(c); err != nil {
		return err
	}

	var req createSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sale, err := h.service.RegisterSale(c.Request().Context(), toRegisterSaleInput(req))
	if err != nil {
		return err
	}

	h.metrics.ObserveSale(sale.FinalValue, sale.DiscountValue)
	return c.JSON(http.StatusCreated, toSaleResponse(*sale))
}
