package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Loan struct {
	ID             int64               `db:"id" json:"id"`
	PropertyID     int64               `db:"property_id" json:"property_id"`
	PurchaseID     *int64              `db:"purchase_id" json:"purchase_id"`
	Lender         *string             `db:"lender" json:"lender"`
	LoanNumber     *string             `db:"loan_number" json:"loan_number"`
	LoanType       *string             `db:"loan_type" json:"loan_type"`
	OriginalAmount decimal.NullDecimal `db:"original_amount" json:"original_amount"`
	InterestRate   decimal.NullDecimal `db:"interest_rate" json:"interest_rate"`
	TermMonths     *int                `db:"term_months" json:"term_months"`
	StartDate      *Date               `db:"start_date" json:"start_date"`
	MaturityDate   *Date               `db:"maturity_date" json:"maturity_date"`
	MonthlyPayment decimal.NullDecimal `db:"monthly_payment" json:"monthly_payment"`
	EscrowIncluded bool                `db:"escrow_included" json:"escrow_included"`
	Notes          *string             `db:"notes" json:"notes"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updated_at"`
}

var LoanTypes = []string{
	"conventional", "fha", "va", "heloc", "commercial", "private", "seller_financed", "other",
}

type LoanRepository interface {
	ListByProperty(ctx context.Context, propertyID int64) ([]*Loan, error)
	Get(ctx context.Context, id int64) (*Loan, error)
	Create(ctx context.Context, fields Fields) (*Loan, error)
	Update(ctx context.Context, id int64, fields Fields) (*Loan, error)
	Delete(ctx context.Context, id int64) error
}
