package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miketud/realestateapp/internal/domain"
)

type ContactRepo struct {
	table[domain.Contact]
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{table: newTable[domain.Contact](pool, "contacts", domain.ErrContactNotFound)}
}

func (r *ContactRepo) List(ctx context.Context, filter domain.ContactFilter) ([]*domain.Contact, error) {
	ds := r.from().Order(goqu.L("lower(name)").Asc(), goqu.C(colID).Asc())

	if filter.PropertyID != nil {
		ds = ds.Where(goqu.C(colPropertyID).Eq(*filter.PropertyID))
	}
	if filter.Role != "" {
		ds = ds.Where(goqu.C("role").Eq(filter.Role))
	}
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		ds = ds.Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("company").ILike(pattern),
			goqu.C("email").ILike(pattern),
		))
	}

	return r.queryAll(ctx, ds)
}

func (r *ContactRepo) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	return r.get(ctx, id)
}

func (r *ContactRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Contact, error) {
	return r.insert(ctx, fields)
}

func (r *ContactRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error) {
	return r.update(ctx, id, fields)
}

func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
