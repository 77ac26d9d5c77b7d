package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies a ledger month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type RentRoll struct {
	ID           int64               `db:"id" json:"id"`
	PropertyID   int64               `db:"property_id" json:"property_id"`
	Month        int                 `db:"month" json:"month"`
	Year         int                 `db:"year" json:"year"`
	TenantName   *string             `db:"tenant_name" json:"tenant_name"`
	RentDue      decimal.NullDecimal `db:"rent_due" json:"rent_due"`
	RentReceived decimal.NullDecimal `db:"rent_received" json:"rent_received"`
	DateReceived *Date               `db:"date_received" json:"date_received"`
	LateFee      decimal.NullDecimal `db:"late_fee" json:"late_fee"`
	Notes        *string             `db:"notes" json:"notes"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// PaymentLog is the monthly record of what a property cost to carry.
type PaymentLog struct {
	ID           int64               `db:"id" json:"id"`
	PropertyID   int64               `db:"property_id" json:"property_id"`
	Month        int                 `db:"month" json:"month"`
	Year         int                 `db:"year" json:"year"`
	Mortgage     decimal.NullDecimal `db:"mortgage" json:"mortgage"`
	PropertyTax  decimal.NullDecimal `db:"property_tax" json:"property_tax"`
	Insurance    decimal.NullDecimal `db:"insurance" json:"insurance"`
	HOA          decimal.NullDecimal `db:"hoa" json:"hoa"`
	Utilities    decimal.NullDecimal `db:"utilities" json:"utilities"`
	Maintenance  decimal.NullDecimal `db:"maintenance" json:"maintenance"`
	Other        decimal.NullDecimal `db:"other" json:"other"`
	Notes        *string             `db:"notes" json:"notes"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// Total sums every expense column; NULLs count as zero.
func (p *PaymentLog) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range []decimal.NullDecimal{p.Mortgage, p.PropertyTax, p.Insurance, p.HOA, p.Utilities, p.Maintenance, p.Other} {
		if v.Valid {
			total = total.Add(v.Decimal)
		}
	}
	return total
}

type LoanPayment struct {
	ID         int64               `db:"id" json:"id"`
	LoanID     int64               `db:"loan_id" json:"loan_id"`
	Month      int                 `db:"month" json:"month"`
	Year       int                 `db:"year" json:"year"`
	AmountDue  decimal.NullDecimal `db:"amount_due" json:"amount_due"`
	AmountPaid decimal.NullDecimal `db:"amount_paid" json:"amount_paid"`
	Principal  decimal.NullDecimal `db:"principal" json:"principal"`
	Interest   decimal.NullDecimal `db:"interest" json:"interest"`
	Escrow     decimal.NullDecimal `db:"escrow" json:"escrow"`
	PaidDate   *Date               `db:"paid_date" json:"paid_date"`
	Notes      *string             `db:"notes" json:"notes"`
	CreatedAt  time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at" json:"updated_at"`
}

// LedgerRepository stores monthly rows owned by a parent record (a property
// or a loan) and keyed by (owner, month, year).
type LedgerRepository[T any] interface {
	// List returns the owner's rows ordered by year and month; a nil year lists all years.
	List(ctx context.Context, ownerID int64, year *int) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	// Upsert inserts the row for (owner, period) or overwrites only the
	// supplied columns of the existing one; created reports an insert.
	Upsert(ctx context.Context, ownerID int64, period Period, fields Fields) (row *T, created bool, err error)
	Update(ctx context.Context, id int64, fields Fields) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type (
	RentRollRepository    = LedgerRepository[RentRoll]
	PaymentLogRepository  = LedgerRepository[PaymentLog]
	LoanPaymentRepository = LedgerRepository[LoanPayment]
)
