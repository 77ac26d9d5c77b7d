package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miketud/realestateapp/internal/domain"
)

type LoanRepo struct {
	table[domain.Loan]
}

func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{table: newTable[domain.Loan](pool, "loan_details", domain.ErrLoanNotFound)}
}

func (r *LoanRepo) ListByProperty(ctx context.Context, propertyID int64) ([]*domain.Loan, error) {
	return r.queryAll(ctx, r.from().
		Where(goqu.C(colPropertyID).Eq(propertyID)).
		Order(goqu.C(colID).Asc()))
}

func (r *LoanRepo) Get(ctx context.Context, id int64) (*domain.Loan, error) {
	return r.get(ctx, id)
}

func (r *LoanRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Loan, error) {
	return r.insert(ctx, fields)
}

func (r *LoanRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Loan, error) {
	return r.update(ctx, id, fields)
}

func (r *LoanRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
