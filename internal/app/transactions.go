package app

import (
	"context"

	"github.com/miketud/realestateapp/internal/domain"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
)

// ListTransactions returns transactions newest first. When the filter names
// a property it must exist.
func (s *Service) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if filter.PropertyID != nil {
		if err := s.requireProperty(ctx, *filter.PropertyID); err != nil {
			return nil, err
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(filter.From.Time) {
		return nil, apperrors.ValidationError("to must not be before from")
	}
	return s.transactions.List(ctx, filter)
}

func (s *Service) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactions.Get(ctx, id)
}

func (s *Service) CreateTransaction(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Transaction, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	row := fields.Clone()
	row["property_id"] = propertyID
	return s.transactions.Create(ctx, row)
}

func (s *Service) UpdateTransaction(ctx context.Context, id int64, fields domain.Fields) (*domain.Transaction, error) {
	return s.transactions.Update(ctx, id, fields)
}

func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	return s.transactions.Delete(ctx, id)
}
