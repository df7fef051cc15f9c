package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

type ClientRepository struct {
	store *Store
}

func NewClientRepository(store *Store) *ClientRepository {
	return &ClientRepository{store: store}
}

type clientRow struct {
	ID                     int64               `db:"id"`
	Name                   string              `db:"name"`
	Email                  sql.NullString      `db:"email"`
	Phone                  sql.NullString      `db:"phone"`
	Address                sql.NullString      `db:"address"`
	SpecialInspectionValue decimal.NullDecimal `db:"special_inspection_value"`
	CreatedAt              time.Time           `db:"created_at"`
}

func (r clientRow) toDomain() domain.Client {
	special := r.SpecialInspectionValue
	if special.Valid {
		special.Decimal = special.Decimal.Round(domain.MoneyPlaces)
	}
	return domain.Client{
		ID:                     r.ID,
		Name:                   r.Name,
		Email:                  stringPtr(r.Email),
		Phone:                  stringPtr(r.Phone),
		Address:                stringPtr(r.Address),
		SpecialInspectionValue: special,
		CreatedAt:              r.CreatedAt.UTC(),
	}
}

const clientColumns = `id, name, email, phone, address, special_inspection_value, created_at`

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY name ASC, id ASC`

	var rows []clientRow
	if err := r.store.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, wrapErr("list clients", err)
	}

	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, row.toDomain())
	}
	return clients, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`

	var row clientRow
	if err := r.store.db.GetContext(ctx, &row, r.store.rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, wrapErr("find client", err)
	}
	c := row.toDomain()
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	const q = `
		INSERT INTO clients (name, email, phone, address, special_inspection_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	if err := client.Validate(); err != nil {
		return err
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	err := r.store.db.QueryRowxContext(ctx, r.store.rebind(q), r.args(client)...).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientExists
		}
		return wrapErr("create client", err)
	}
	return nil
}

func (r *ClientRepository) InsertIfAbsent(ctx context.Context, client *domain.Client) (bool, error) {
	const q = `
		INSERT INTO clients (name, email, phone, address, special_inspection_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`

	if err := client.Validate(); err != nil {
		return false, err
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	err := r.store.db.QueryRowxContext(ctx, r.store.rebind(q), r.args(client)...).Scan(&client.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, wrapErr("insert client", err)
	}
	return true, nil
}

func (r *ClientRepository) args(c *domain.Client) []any {
	special := c.SpecialInspectionValue
	if special.Valid {
		special.Decimal = special.Decimal.Round(domain.MoneyPlaces)
	}
	return []any{
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Address),
		special,
		c.CreatedAt,
	}
}
