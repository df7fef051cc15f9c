package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

// ReportService computes the dashboard and report aggregates, reading the
// dashboard counters through the cache when one is configured.
type ReportService struct {
	repo   ports.ReportRepository
	cache  ports.StatsCache
	logger zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, cache ports.StatsCache, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, cache: cache, logger: logger}
}

func (s *ReportService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		gen  int64
		fill bool
	)
	if s.cache != nil {
		cached, g, found, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		case found:
			return cached, nil
		default:
			gen, fill = g, true
		}
	}

	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	// gen was read before the query; a write since then has moved the cache
	// to a newer generation and this entry stays invisible.
	if fill {
		if err := s.cache.Set(ctx, gen, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func (s *ReportService) DiscountSummary(ctx context.Context) (*domain.DiscountSummary, error) {
	return s.repo.DiscountSummary(ctx)
}

func (s *ReportService) MonthlySummary(ctx context.Context) ([]domain.MonthlySummary, error) {
	return s.repo.MonthlySummary(ctx)
}
