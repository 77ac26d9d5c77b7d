package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miketud/realestateapp/internal/domain"
)

// LedgerRepo stores monthly rows keyed by (owner, month, year).
type LedgerRepo[T any] struct {
	table[T]
	owner string
}

func NewRentRollRepo(pool *pgxpool.Pool) *LedgerRepo[domain.RentRoll] {
	return &LedgerRepo[domain.RentRoll]{
		table: newTable[domain.RentRoll](pool, "rent_roll", domain.ErrRentRollNotFound),
		owner: colPropertyID,
	}
}

func NewPaymentLogRepo(pool *pgxpool.Pool) *LedgerRepo[domain.PaymentLog] {
	return &LedgerRepo[domain.PaymentLog]{
		table: newTable[domain.PaymentLog](pool, "payment_log", domain.ErrPaymentLogNotFound),
		owner: colPropertyID,
	}
}

func NewLoanPaymentRepo(pool *pgxpool.Pool) *LedgerRepo[domain.LoanPayment] {
	return &LedgerRepo[domain.LoanPayment]{
		table: newTable[domain.LoanPayment](pool, "loan_payments", domain.ErrLoanPaymentNotFound),
		owner: "loan_id",
	}
}

func (r *LedgerRepo[T]) List(ctx context.Context, ownerID int64, year *int) ([]*T, error) {
	ds := r.from().
		Where(goqu.C(r.owner).Eq(ownerID)).
		Order(goqu.C(colYear).Asc(), goqu.C(colMonth).Asc())
	if year != nil {
		ds = ds.Where(goqu.C(colYear).Eq(*year))
	}
	return r.queryAll(ctx, ds)
}

func (r *LedgerRepo[T]) Get(ctx context.Context, id int64) (*T, error) {
	return r.get(ctx, id)
}

func (r *LedgerRepo[T]) Upsert(ctx context.Context, ownerID int64, period domain.Period, fields domain.Fields) (*T, bool, error) {
	row := fields.Clone()
	row[r.owner] = ownerID
	row[colMonth] = period.Month
	row[colYear] = period.Year
	return r.upsert(ctx, []string{r.owner, colMonth, colYear}, row)
}

func (r *LedgerRepo[T]) Update(ctx context.Context, id int64, fields domain.Fields) (*T, error) {
	return r.update(ctx, id, fields)
}

func (r *LedgerRepo[T]) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
