package app

import (
	"context"

	"github.com/miketud/realestateapp/internal/domain"
)

func (s *Service) GetPurchase(ctx context.Context, propertyID int64) (*domain.PurchaseDetails, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.purchases.GetByProperty(ctx, propertyID)
}

// PutPurchase creates the property's purchase details or merges fields
// into the existing record. created reports an insert.
func (s *Service) PutPurchase(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, false, err
	}
	return s.purchases.Upsert(ctx, propertyID, fields)
}

func (s *Service) UpdatePurchase(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.purchases.UpdateByProperty(ctx, propertyID, fields)
}

func (s *Service) DeletePurchase(ctx context.Context, propertyID int64) error {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.purchases.DeleteByProperty(ctx, propertyID)
}
