package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miketud/realestateapp/internal/domain"
)

const countRelatedQuery = `
SELECT
	(SELECT count(*) FROM rent_roll    WHERE property_id = $1),
	(SELECT count(*) FROM payment_log  WHERE property_id = $1),
	(SELECT count(*) FROM transactions WHERE property_id = $1),
	(SELECT count(*) FROM loan_details WHERE property_id = $1),
	(SELECT count(*) FROM contacts     WHERE property_id = $1)`

type PropertyRepo struct {
	table[domain.Property]
}

func NewPropertyRepo(pool *pgxpool.Pool) *PropertyRepo {
	return &PropertyRepo{table: newTable[domain.Property](pool, "properties", domain.ErrPropertyNotFound)}
}

func (r *PropertyRepo) List(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
	ds := r.from().Order(goqu.L("lower(name)").Asc(), goqu.C(colID).Asc())

	if filter.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(filter.Status))
	}
	if filter.PropertyType != "" {
		ds = ds.Where(goqu.C("property_type").Eq(filter.PropertyType))
	}
	if filter.Owner != "" {
		ds = ds.Where(goqu.C("owner").ILike(likePattern(filter.Owner)))
	}
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		ds = ds.Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("address").ILike(pattern),
			goqu.C("city").ILike(pattern),
		))
	}

	return r.queryAll(ctx, ds)
}

func (r *PropertyRepo) Get(ctx context.Context, id int64) (*domain.Property, error) {
	return r.get(ctx, id)
}

func (r *PropertyRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Property, error) {
	return r.insert(ctx, fields)
}

func (r *PropertyRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
	return r.update(ctx, id, fields)
}

// Delete removes the property with its ledgers; linked contacts are kept
// and detached.
func (r *PropertyRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

func (r *PropertyRepo) CountRelated(ctx context.Context, id int64) (domain.RelatedCounts, error) {
	var c domain.RelatedCounts
	err := r.pool.QueryRow(ctx, countRelatedQuery, id).
		Scan(&c.RentRoll, &c.PaymentLog, &c.Transactions, &c.Loans, &c.Contacts)
	if err != nil {
		return domain.RelatedCounts{}, fmt.Errorf("failed to count related rows: %w", err)
	}
	return c, nil
}
