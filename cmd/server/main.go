// @title                       Sistema de Gestão Empresarial API
// @version                     6.3
// @description                 Clients, sales and dashboard reports for the business management back office.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/gestao-empresarial/management-system/internal/api"
	"github.com/gestao-empresarial/management-system/internal/infrastructure/db/redis"
	"github.com/gestao-empresarial/management-system/internal/infrastructure/db/sqlstore"
	"github.com/gestao-empresarial/management-system/internal/pkg/config"
	"github.com/gestao-empresarial/management-system/pkg/logger"
)

func main() {
	// 1. Load .env (optional) and configuration
	_ = godotenv.Load()
	cfg := config.Load()

	// 2. Initialize structured logger
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "gestao-api",
		Version: cfg.AppVersion,
	})
	log.Info().Str("env", cfg.Env).Str("db_driver", cfg.Database.Driver).Msg("starting server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Open the store and make sure schema and seed rows exist
	store, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Timeout:         cfg.Database.ConnectTimeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	seed := sqlstore.DefaultSeed()
	seed.AdminPassword = cfg.Seed.AdminPassword
	seed.AdminEmail = cfg.Seed.AdminEmail
	if _, err := store.Initialize(ctx, seed); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	// 4. Optional Redis stats cache
	var rdb *goredis.Client
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, dashboard stats cache disabled")
			rdb = nil
		} else {
			defer rdb.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	// 5. HTTP server
	e := api.NewRouter(api.Dependencies{
		Config: cfg,
		Store:  store,
		Redis:  rdb,
		Logger: log,
	})
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
