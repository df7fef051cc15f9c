package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/api/middleware"
	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

type stubSaleService struct {
	sales     []domain.Sale
	lastInput ports.RegisterSaleInput
	err       error
}

func (s *stubSaleService) ListSales(context.Context) ([]domain.Sale, error) {
	return s.sales, s.err
}

func (s *stubSaleService) RegisterSale(_ context.Context, in ports.RegisterSaleInput) (*domain.Sale, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	original := decimal.RequireFromString("150")
	if in.OriginalValue != nil {
		original = *in.OriginalValue
	}
	return domain.NewSale(domain.NewSaleInput{
		ClientID:      in.ClientID,
		ServiceName:   in.ServiceName,
		OriginalValue: original,
		DiscountValue: in.DiscountValue,
		SaleDate:      in.SaleDate,
	}, time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
}

// newAuthedContext returns a context as the Auth middleware would leave it.
func newAuthedContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, int64(1))
	c.Set(middleware.CtxUsername, "admin")
	return c, rec
}

func TestSaleHandler_Create_Success(t *testing.T) {
	m := newTestMetrics()
	svc := &stubSaleService{}
	h := NewSaleHandler(svc, m)

	c, rec := newAuthedContext(http.MethodPost, "/api/sales", `{"client_id":1,"service_name":"Vistoria","original_value":150,"discount_value":20}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp saleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.FinalValue != 130 || resp.OriginalValue != 150 || resp.DiscountValue != 20 {
		t.Fatalf("unexpected money fields: %+v", resp)
	}
	if svc.lastInput.ClientID == nil || *svc.lastInput.ClientID != 1 {
		t.Fatalf("client id not forwarded: %+v", svc.lastInput)
	}
	if got := testutil.ToFloat64(m.SalesRegistered); got != 1 {
		t.Fatalf("expected one sale counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.SalesRevenue); got != 130 {
		t.Fatalf("expected revenue 130 counted, got %v", got)
	}
}

func TestSaleHandler_Create_OmittedPriceIsNil(t *testing.T) {
	svc := &stubSaleService{}
	h := NewSaleHandler(svc, newTestMetrics())

	c, _ := newAuthedContext(http.MethodPost, "/api/sales", `{"service_name":"Vistoria"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastInput.OriginalValue != nil {
		t.Fatalf("expected omitted original_value to stay nil, got %v", svc.lastInput.OriginalValue)
	}
}

func TestSaleHandler_Create_Validation(t *testing.T) {
	cases := map[string]string{
		"missing service":    `{"original_value":10}`,
		"negative discount":  `{"service_name":"Vistoria","discount_value":-5}`,
		"negative original":  `{"service_name":"Vistoria","original_value":-1}`,
		"bad client id":      `{"service_name":"Vistoria","client_id":0}`,
		"original too large": `{"service_name":"Vistoria","original_value":100000000}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubSaleService{}
			h := NewSaleHandler(svc, newTestMetrics())

			c, _ := newAuthedContext(http.MethodPost, "/api/sales", body)
			err := h.Create(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if svc.lastInput.ServiceName != "" {
				t.Fatalf("service must not be called on invalid input")
			}
		})
	}
}

func TestSaleHandler_Create_RequiresOperator(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{}, newTestMetrics())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(`{"service_name":"Vistoria"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSaleHandler_List_RendersNullClientName(t *testing.T) {
	name := "João Silva"
	clientID := int64(1)
	svc := &stubSaleService{sales: []domain.Sale{
		{ID: 2, ServiceName: "Laudo", OriginalValue: decimal.NewFromInt(50), FinalValue: decimal.NewFromInt(50)},
		{ID: 1, ClientID: &clientID, ClientName: &name, ServiceName: "Vistoria", OriginalValue: decimal.NewFromInt(100), FinalValue: decimal.NewFromInt(100)},
	}}
	h := NewSaleHandler(svc, newTestMetrics())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/sales", nil), rec)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(resp))
	}
	if v, ok := resp[0]["client_name"]; !ok || v != nil {
		t.Fatalf("expected explicit null client_name, got %v", resp[0])
	}
	if resp[1]["client_name"] != "João Silva" {
		t.Fatalf("unexpected client_name: %v", resp[1]["client_name"])
	}
}
