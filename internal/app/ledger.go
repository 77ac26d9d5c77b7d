package app

import (
	"context"

	"github.com/miketud/realestateapp/internal/domain"
)

// Ledger exposes one monthly table whose rows hang off an owner record.
type Ledger[T any] struct {
	repo        domain.LedgerRepository[T]
	ownerExists func(ctx context.Context, ownerID int64) error
}

func NewLedger[T any](repo domain.LedgerRepository[T], ownerExists func(ctx context.Context, ownerID int64) error) *Ledger[T] {
	return &Ledger[T]{repo: repo, ownerExists: ownerExists}
}

// List returns the owner's rows, optionally for a single year. A missing
// owner is reported rather than answered with an empty list.
func (l *Ledger[T]) List(ctx context.Context, ownerID int64, year *int) ([]*T, error) {
	if err := l.ownerExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return l.repo.List(ctx, ownerID, year)
}

func (l *Ledger[T]) Get(ctx context.Context, id int64) (*T, error) {
	return l.repo.Get(ctx, id)
}

// Upsert writes the row for (owner, period). Columns absent from fields
// keep their stored value when the row already exists.
func (l *Ledger[T]) Upsert(ctx context.Context, ownerID int64, period domain.Period, fields domain.Fields) (*T, bool, error) {
	if err := l.ownerExists(ctx, ownerID); err != nil {
		return nil, false, err
	}
	return l.repo.Upsert(ctx, ownerID, period, fields)
}

func (l *Ledger[T]) Update(ctx context.Context, id int64, fields domain.Fields) (*T, error) {
	return l.repo.Update(ctx, id, fields)
}

func (l *Ledger[T]) Delete(ctx context.Context, id int64) error {
	return l.repo.Delete(ctx, id)
}
