package service

import (
	"context"
	"sort"
	"time"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	byID      map[int64]*domain.Client
	nextID    int64
	createErr error
}

func newStubClientRepo(clients ...domain.Client) *stubClientRepo {
	r := &stubClientRepo{byID: make(map[int64]*domain.Client)}
	for _, c := range clients {
		clone := c
		r.byID[c.ID] = &clone
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *stubClientRepo) List(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, c := range r.byID {
		if c.Name == client.Name {
			return domain.ErrClientExists
		}
	}
	r.nextID++
	client.ID = r.nextID
	clone := *client
	r.byID[client.ID] = &clone
	return nil
}

func (r *stubClientRepo) InsertIfAbsent(ctx context.Context, client *domain.Client) (bool, error) {
	err := r.Create(ctx, client)
	if err == domain.ErrClientExists {
		return false, nil
	}
	return err == nil, err
}

type stubSaleRepo struct {
	sales     []domain.Sale
	lastInput domain.NewSaleInput
}

func (r *stubSaleRepo) List(_ context.Context) ([]domain.Sale, error) {
	return append([]domain.Sale(nil), r.sales...), nil
}

func (r *stubSaleRepo) Create(_ context.Context, input domain.NewSaleInput) (*domain.Sale, error) {
	r.lastInput = input
	sale, err := domain.NewSale(input, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	sale.ID = int64(len(r.sales) + 1)
	r.sales = append(r.sales, *sale)
	return sale, nil
}

type stubReportRepo struct {
	stats   *domain.DashboardStats
	monthly []domain.MonthlySummary
	calls   int
	err     error
	// onQuery runs after the counters are read and before they are returned.
	onQuery func()
}

func (r *stubReportRepo) DashboardStats(_ context.Context) (*domain.DashboardStats, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	clone := *r.stats
	if r.onQuery != nil {
		r.onQuery()
	}
	return &clone, nil
}

func (r *stubReportRepo) DiscountSummary(_ context.Context) (*domain.DiscountSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.DiscountSummary{}, nil
}

func (r *stubReportRepo) MonthlySummary(_ context.Context) ([]domain.MonthlySummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.monthly, nil
}

// stubStatsCache mirrors the generation semantics of the Redis cache.
type stubStatsCache struct {
	entry       *domain.DashboardStats
	entryGen    int64
	gen         int64
	getErr      error
	sets        int
	invalidated int
}

func (c *stubStatsCache) Get(_ context.Context) (*domain.DashboardStats, int64, bool, error) {
	if c.getErr != nil {
		return nil, 0, false, c.getErr
	}
	if c.entry == nil || c.entryGen != c.gen {
		return nil, c.gen, false, nil
	}
	clone := *c.entry
	return &clone, c.gen, true, nil
}

func (c *stubStatsCache) Set(_ context.Context, gen int64, stats *domain.DashboardStats) error {
	c.sets++
	clone := *stats
	c.entry = &clone
	c.entryGen = gen
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context) error {
	c.invalidated++
	c.gen++
	return nil
}
