package domain

import (
	"context"
	"time"
)

type Property struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Address         *string   `db:"address" json:"address"`
	City            *string   `db:"city" json:"city"`
	State           *string   `db:"state" json:"state"`
	Zip             *string   `db:"zip" json:"zip"`
	Owner           *string   `db:"owner" json:"owner"`
	PropertyType    *string   `db:"property_type" json:"property_type"`
	Status          *string   `db:"status" json:"status"`
	IncomeProducing bool      `db:"income_producing" json:"income_producing"`
	Units           *int      `db:"units" json:"units"`
	Notes           *string   `db:"notes" json:"notes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Property statuses.
const (
	StatusRented          = "rented"
	StatusVacant          = "vacant"
	StatusOwnerOccupied   = "owner_occupied"
	StatusUnderRenovation = "under_renovation"
	StatusForSale         = "for_sale"
	StatusForRent         = "for_rent"
	StatusSold            = "sold"
)

var PropertyStatuses = []string{
	StatusRented, StatusVacant, StatusOwnerOccupied, StatusUnderRenovation,
	StatusForSale, StatusForRent, StatusSold,
}

var PropertyTypes = []string{
	"single_family", "multi_family", "condo", "townhouse", "commercial", "land", "other",
}

// IncomeProducingFor infers the income-producing flag from a status.
// ok is false for statuses that carry no inference.
func IncomeProducingFor(status string) (incomeProducing, ok bool) {
	switch status {
	case StatusRented:
		return true, true
	case StatusVacant, StatusOwnerOccupied, StatusUnderRenovation, StatusForSale, StatusForRent, StatusSold:
		return false, true
	default:
		return false, false
	}
}

type PropertyFilter struct {
	Status       string
	PropertyType string
	Owner        string
	Query        string
}

// RelatedCounts holds the number of ledger rows hanging off a property.
type RelatedCounts struct {
	RentRoll     int `json:"rent_roll"`
	PaymentLog   int `json:"payment_log"`
	Transactions int `json:"transactions"`
	Loans        int `json:"loans"`
	Contacts     int `json:"contacts"`
}

type PropertyRepository interface {
	List(ctx context.Context, filter PropertyFilter) ([]*Property, error)
	Get(ctx context.Context, id int64) (*Property, error)
	Create(ctx context.Context, fields Fields) (*Property, error)
	Update(ctx context.Context, id int64, fields Fields) (*Property, error)
	Delete(ctx context.Context, id int64) error
	CountRelated(ctx context.Context, id int64) (RelatedCounts, error)
}
