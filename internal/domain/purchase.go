package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseDetails records the acquisition terms of a property (one per property).
type PurchaseDetails struct {
	ID            int64               `db:"id" json:"id"`
	PropertyID    int64               `db:"property_id" json:"property_id"`
	PurchaseDate  *Date               `db:"purchase_date" json:"purchase_date"`
	PurchasePrice decimal.NullDecimal `db:"purchase_price" json:"purchase_price"`
	DownPayment   decimal.NullDecimal `db:"down_payment" json:"down_payment"`
	ClosingCosts  decimal.NullDecimal `db:"closing_costs" json:"closing_costs"`
	Seller        *string             `db:"seller" json:"seller"`
	TitleCompany  *string             `db:"title_company" json:"title_company"`
	Notes         *string             `db:"notes" json:"notes"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updated_at"`
}

type PurchaseRepository interface {
	GetByProperty(ctx context.Context, propertyID int64) (*PurchaseDetails, error)
	// Upsert inserts or merges the details of propertyID; created reports an insert.
	Upsert(ctx context.Context, propertyID int64, fields Fields) (details *PurchaseDetails, created bool, err error)
	UpdateByProperty(ctx context.Context, propertyID int64, fields Fields) (*PurchaseDetails, error)
	DeleteByProperty(ctx context.Context, propertyID int64) error
}
