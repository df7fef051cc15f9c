package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

type SaleRepository struct {
	store *Store
	now   func() time.Time
}

func NewSaleRepository(store *Store) *SaleRepository {
	return &SaleRepository{store: store, now: time.Now}
}

type saleRow struct {
	ID            int64           `db:"id"`
	ClientID      sql.NullInt64   `db:"client_id"`
	ServiceName   string          `db:"service_name"`
	OriginalValue decimal.Decimal `db:"original_value"`
	DiscountValue decimal.Decimal `db:"discount_value"`
	FinalValue    decimal.Decimal `db:"final_value"`
	SaleDate      time.Time       `db:"sale_date"`
	ClientName    sql.NullString  `db:"client_name"`
}

func (r saleRow) toDomain() domain.Sale {
	s := domain.Sale{
		ID:            r.ID,
		ServiceName:   r.ServiceName,
		OriginalValue: r.OriginalValue.Round(domain.MoneyPlaces),
		DiscountValue: r.DiscountValue.Round(domain.MoneyPlaces),
		FinalValue:    r.FinalValue.Round(domain.MoneyPlaces),
		SaleDate:      r.SaleDate.UTC(),
		ClientName:    stringPtr(r.ClientName),
	}
	if r.ClientID.Valid {
		id := r.ClientID.Int64
		s.ClientID = &id
	}
	return s
}

// List joins each sale with its client's name. A missing client degrades to
// a nil ClientName rather than an error.
func (r *SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	const q = `
		SELECT s.id, s.client_id, s.service_name, s.original_value, s.discount_value,
		       s.final_value, s.sale_date, c.name AS client_name
		FROM sales s
		LEFT JOIN clients c ON c.id = s.client_id
		ORDER BY s.sale_date DESC, s.id DESC`

	var rows []saleRow
	if err := r.store.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, wrapErr("list sales", err)
	}

	sales := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, row.toDomain())
	}
	return sales, nil
}

func (r *SaleRepository) Create(ctx context.Context, input domain.NewSaleInput) (*domain.Sale, error) {
	const q = `
		INSERT INTO sales (client_id, service_name, original_value, discount_value, final_value, sale_date)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	sale, err := domain.NewSale(input, r.now())
	if err != nil {
		return nil, err
	}

	var clientID sql.NullInt64
	if sale.ClientID != nil {
		clientID = sql.NullInt64{Int64: *sale.ClientID, Valid: true}
	}

	err = r.store.db.QueryRowxContext(ctx, r.store.rebind(q),
		clientID,
		sale.ServiceName,
		sale.OriginalValue,
		sale.DiscountValue,
		sale.FinalValue,
		sale.SaleDate,
	).Scan(&sale.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrClientNotFound
		}
		return nil, wrapErr("create sale", err)
	}
	return sale, nil
}
