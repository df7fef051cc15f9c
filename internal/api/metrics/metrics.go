// Package metrics defines the business counters exposed on /metrics next to
// the HTTP metrics collected by echoprometheus.
//
// Counters are registered on the registry passed to New so every router (and
// every test) owns an isolated set.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "gestao"

// Login results used as the "result" label.
const (
	LoginSuccess      = "success"
	LoginInvalid      = "invalid_credentials"
	LoginMissingField = "missing_field"
	LoginBadPayload   = "bad_payload"
	LoginError        = "error"
)

type Metrics struct {
	// LoginAttempts counts login calls by result.
	LoginAttempts *prometheus.CounterVec

	ClientsCreated  prometheus.Counter
	SalesRegistered prometheus.Counter

	// SalesRevenue accumulates the final value of registered sales.
	SalesRevenue prometheus.Counter

	// SaleDiscount observes the discount granted per sale.
	SaleDiscount prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		ClientsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clients_created_total",
			Help:      "Total number of clients created through the API.",
		}),
		SalesRegistered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_registered_total",
			Help:      "Total number of sales registered through the API.",
		}),
		SalesRevenue: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_revenue_total",
			Help:      "Sum of final_value over sales registered through the API.",
		}),
		SaleDiscount: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sale_discount_value",
			Help:      "Discount granted per registered sale.",
			Buckets:   []float64{0, 5, 10, 20, 50, 100, 200},
		}),
	}
}

// ObserveSale records one registered sale.
func (m *Metrics) ObserveSale(final, discount decimal.Decimal) {
	m.SalesRegistered.Inc()
	m.SalesRevenue.Add(final.InexactFloat64())
	m.SaleDiscount.Observe(discount.InexactFloat64())
}
