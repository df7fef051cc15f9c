package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gestao-empresarial/management-system/internal/api/metrics"
	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.UserSummary, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.UserSummary, error) {
	_, user, err := s.loginFn(ctx, username, password)
	return user, err
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.UserSummary, error) {
	return s.loginFn(ctx, username, password)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func postLogin(t *testing.T, h *AuthHandler, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.Login(e.NewContext(req, rec))
}

func TestAuthHandler_Login_Success(t *testing.T) {
	m := newTestMetrics()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.UserSummary, error) {
			if username != "admin" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "tok", &domain.UserSummary{ID: 1, Username: "admin"}, nil
		},
	}

	rec, err := postLogin(t, NewAuthHandler(stub, m), `{"username":"admin","password":"admin123"}`)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] != "tok" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != float64(1) || user["username"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues(metrics.LoginSuccess)); got != 1 {
		t.Fatalf("expected one successful login counted, got %v", got)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
		label   string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, msgInvalidCredentials, metrics.LoginInvalid},
		{"missing field", domain.ErrMissingField, http.StatusBadRequest, msgMissingField, metrics.LoginMissingField},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMetrics()
			stub := &stubAuthService{
				loginFn: func(context.Context, string, string) (string, *domain.UserSummary, error) {
					return "", nil, tc.err
				},
			}

			rec, err := postLogin(t, NewAuthHandler(stub, m), `{"username":"admin","password":"x"}`)
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}

			var resp loginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Success || resp.User != nil || resp.Token != "" || resp.Message != tc.message {
				t.Fatalf("unexpected payload: %+v", resp)
			}
			if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues(tc.label)); got != 1 {
				t.Fatalf("expected attempt counted under %s, got %v", tc.label, got)
			}
		})
	}
}

func TestAuthHandler_Login_StoreErrorIsReturned(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.UserSummary, error) {
			return "", nil, domain.ErrStoreUnavailable
		},
	}

	_, err := postLogin(t, NewAuthHandler(stub, newTestMetrics()), `{"username":"admin","password":"x"}`)
	if err != domain.ErrStoreUnavailable {
		t.Fatalf("expected ErrStoreUnavailable to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.UserSummary, error) {
			t.Fatalf("service must not be called")
			return "", nil, nil
		},
	}

	m := newTestMetrics()
	rec, err := postLogin(t, NewAuthHandler(stub, m), `{"username":`)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Success || resp.Message != msgBadPayload {
		t.Fatalf("malformed JSON must not be reported as missing fields: %+v", resp)
	}
	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues(metrics.LoginBadPayload)); got != 1 {
		t.Fatalf("expected attempt counted under %s, got %v", metrics.LoginBadPayload, got)
	}
}
