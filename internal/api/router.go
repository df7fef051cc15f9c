package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gestao-empresarial/management-system/docs"
	"github.com/gestao-empresarial/management-system/internal/api/handler"
	"github.com/gestao-empresarial/management-system/internal/api/metrics"
	"github.com/gestao-empresarial/management-system/internal/api/middleware"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
	"github.com/gestao-empresarial/management-system/internal/core/service"
	"github.com/gestao-empresarial/management-system/internal/infrastructure/db/redis"
	"github.com/gestao-empresarial/management-system/internal/infrastructure/db/sqlstore"
	"github.com/gestao-empresarial/management-system/internal/pkg/config"
)

// Dependencies are the long-lived resources the router wires into handlers.
type Dependencies struct {
	Config *config.Config
	Store  *sqlstore.Store
	// Redis is optional; nil disables the dashboard stats cache.
	Redis  *goredis.Client
	Logger zerolog.Logger
	// Registry receives HTTP and business metrics. A fresh registry is used
	// when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	cfg := deps.Config
	log := deps.Logger

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := metrics.New(reg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "gestao",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	var cache ports.StatsCache
	if deps.Redis != nil {
		cache = redis.NewStatsCache(deps.Redis, cfg.Redis.StatsTTL)
	}

	clientRepo := sqlstore.NewClientRepository(deps.Store)

	authService := service.NewAuthService(sqlstore.NewUserRepository(deps.Store), cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	clientService := service.NewClientService(clientRepo, cache, log)
	saleService := service.NewSaleService(sqlstore.NewSaleRepository(deps.Store), clientRepo, cache, cfg.StandardPrice(), log)
	reportService := service.NewReportService(sqlstore.NewReportRepository(deps.Store), cache, log)

	authHandler := handler.NewAuthHandler(authService, m)
	clientHandler := handler.NewClientHandler(clientService, m)
	saleHandler := handler.NewSaleHandler(saleService, m)
	reportHandler := handler.NewReportHandler(reportService)

	extraChecks := map[string]handler.PingFunc{}
	if deps.Redis != nil {
		extraChecks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	healthHandler := handler.NewHealthHandler(cfg.AppVersion, deps.Store.Ping, extraChecks)

	requireAuth := middleware.Auth(cfg.Auth.SecretKey)

	// --- API routes ---
	g := e.Group("/api")
	g.GET("/status", healthHandler.Status)
	g.POST("/login", authHandler.Login)

	g.GET("/clients", clientHandler.List)
	g.POST("/clients", clientHandler.Create, requireAuth)

	g.GET("/sales", saleHandler.List)
	g.POST("/sales", saleHandler.Create, requireAuth)

	g.GET("/dashboard/stats", reportHandler.DashboardStats)
	g.GET("/reports/discounts", reportHandler.Discounts)
	g.GET("/reports/monthly", reportHandler.Monthly)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
