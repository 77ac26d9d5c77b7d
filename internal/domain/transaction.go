package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	PropertyID  int64           `db:"property_id" json:"property_id"`
	TxnDate     Date            `db:"txn_date" json:"txn_date"`
	TxnType     string          `db:"txn_type" json:"txn_type"`
	Category    *string         `db:"category" json:"category"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Payee       *string         `db:"payee" json:"payee"`
	Description *string         `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

const (
	TxnIncome  = "income"
	TxnExpense = "expense"
)

var TransactionTypes = []string{TxnIncome, TxnExpense}

type TransactionFilter struct {
	PropertyID *int64
	From       *Date
	To         *Date
	TxnType    string
	Category   string
}

type TransactionRepository interface {
	List(ctx context.Context, filter TransactionFilter) ([]*Transaction, error)
	Get(ctx context.Context, id int64) (*Transaction, error)
	Create(ctx context.Context, fields Fields) (*Transaction, error)
	Update(ctx context.Context, id int64, fields Fields) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
}
