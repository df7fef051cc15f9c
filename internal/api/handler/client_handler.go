package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestao-empresarial/management-system/internal/api/metrics"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service ports.ClientService
	metrics *metrics.Metrics
}

func NewClientHandler(service ports.ClientService, m *metrics.Metrics) *ClientHandler {
	return &ClientHandler{service: service, metrics: m}
}

// List handles GET /api/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {array}   clientResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// Create handles POST /api/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	if err := requireOperator(c); err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.CreateClient(c.Request().Context(), toCreateClientInput(req))
	if err != nil {
		return err
	}

	h.metrics.ClientsCreated.Inc()
	return c.JSON(http.StatusCreated, toClientResponse(*client))
}
