package domain

import (
	"context"
	"time"
)

type Contact struct {
	ID         int64     `db:"id" json:"id"`
	PropertyID *int64    `db:"property_id" json:"property_id"`
	Name       string    `db:"name" json:"name"`
	Role       *string   `db:"role" json:"role"`
	Company    *string   `db:"company" json:"company"`
	Phone      *string   `db:"phone" json:"phone"`
	Email      *string   `db:"email" json:"email"`
	Notes      *string   `db:"notes" json:"notes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

var ContactRoles = []string{
	"tenant", "property_manager", "contractor", "lender", "agent", "attorney", "insurer", "other",
}

type ContactFilter struct {
	PropertyID *int64
	Role       string
	Query      string
}

type ContactRepository interface {
	List(ctx context.Context, filter ContactFilter) ([]*Contact, error)
	Get(ctx context.Context, id int64) (*Contact, error)
	Create(ctx context.Context, fields Fields) (*Contact, error)
	Update(ctx context.Context, id int64, fields Fields) (*Contact, error)
	Delete(ctx context.Context, id int64) error
}
