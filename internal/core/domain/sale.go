package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale every monetary amount is rounded to.
const MoneyPlaces = 2

// MaxMoney is the largest amount a NUMERIC(10,2) column holds.
var MaxMoney = decimal.RequireFromString("99999999.99")

func checkMoney(field string, v decimal.Decimal) error {
	switch {
	case v.IsNegative():
		return invalid(field, "must not be negative")
	case v.Round(MoneyPlaces).GreaterThan(MaxMoney):
		return invalid(field, "must not exceed "+MaxMoney.StringFixed(MoneyPlaces))
	}
	return nil
}

// Sale records one service sold, optionally to a known client.
type Sale struct {
	ID            int64
	ClientID      *int64
	ServiceName   string
	OriginalValue decimal.Decimal
	DiscountValue decimal.Decimal
	FinalValue    decimal.Decimal
	SaleDate      time.Time

	// ClientName is filled on reads; nil when the sale has no client or the
	// reference no longer resolves.
	ClientName *string
}

// NewSaleInput is what a caller provides to register a sale. The final value
// is always derived, never supplied.
type NewSaleInput struct {
	ClientID      *int64
	ServiceName   string
	OriginalValue decimal.Decimal
	DiscountValue decimal.Decimal
	SaleDate      *time.Time
}

// NewSale validates the input and derives final_value = original - discount.
// now is used as sale_date when the input carries none.
func NewSale(in NewSaleInput, now time.Time) (*Sale, error) {
	name := strings.TrimSpace(in.ServiceName)
	if name == "" {
		return nil, invalid("service_name", "is required")
	}
	if err := checkMoney("original_value", in.OriginalValue); err != nil {
		return nil, err
	}
	if err := checkMoney("discount_value", in.DiscountValue); err != nil {
		return nil, err
	}

	original := in.OriginalValue.Round(MoneyPlaces)
	discount := in.DiscountValue.Round(MoneyPlaces)
	if discount.GreaterThan(original) {
		return nil, invalid("discount_value", "must not exceed original_value")
	}

	date := now
	if in.SaleDate != nil && !in.SaleDate.IsZero() {
		date = *in.SaleDate
	}

	return &Sale{
		ClientID:      in.ClientID,
		ServiceName:   name,
		OriginalValue: original,
		DiscountValue: discount,
		FinalValue:    original.Sub(discount),
		SaleDate:      date.UTC().Truncate(time.Microsecond),
	}, nil
}
