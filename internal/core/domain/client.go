package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer of the inspection business.
type Client struct {
	ID      int64
	Name    string
	Email   *string
	Phone   *string
	Address *string
	// SpecialInspectionValue, when valid, replaces the standard service
	// price for this client.
	SpecialInspectionValue decimal.NullDecimal
	CreatedAt              time.Time
}

// Validate checks the fields a client must carry before it is stored.
func (c *Client) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return invalid("name", "is required")
	}
	if c.SpecialInspectionValue.Valid {
		return checkMoney("special_inspection_value", c.SpecialInspectionValue.Decimal)
	}
	return nil
}

// PriceFor returns the client's special value when set, otherwise standard.
func (c *Client) PriceFor(standard decimal.Decimal) decimal.Decimal {
	if c != nil && c.SpecialInspectionValue.Valid {
		return c.SpecialInspectionValue.Decimal
	}
	return standard
}
