package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miketud/realestateapp/internal/domain"
)

type TransactionRepo struct {
	table[domain.Transaction]
}

func NewTransactionRepo(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{table: newTable[domain.Transaction](pool, "transactions", domain.ErrTransactionNotFound)}
}

func (r *TransactionRepo) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	ds := r.from().Order(goqu.C("txn_date").Desc(), goqu.C(colID).Desc())

	if filter.PropertyID != nil {
		ds = ds.Where(goqu.C(colPropertyID).Eq(*filter.PropertyID))
	}
	if filter.From != nil {
		ds = ds.Where(goqu.C("txn_date").Gte(*filter.From))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.C("txn_date").Lte(*filter.To))
	}
	if filter.TxnType != "" {
		ds = ds.Where(goqu.C("txn_type").Eq(filter.TxnType))
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.Func("lower", goqu.C("category")).Eq(goqu.Func("lower", filter.Category)))
	}

	return r.queryAll(ctx, ds)
}

func (r *TransactionRepo) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	return r.get(ctx, id)
}

func (r *TransactionRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Transaction, error) {
	return r.insert(ctx, fields)
}

func (r *TransactionRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Transaction, error) {
	return r.update(ctx, id, fields)
}

func (r *TransactionRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
