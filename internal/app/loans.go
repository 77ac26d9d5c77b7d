package app

import (
	"context"
	"errors"

	"github.com/miketud/realestateapp/internal/domain"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
)

func (s *Service) ListLoans(ctx context.Context, propertyID int64) ([]*domain.Loan, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.loans.ListByProperty(ctx, propertyID)
}

func (s *Service) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	return s.loans.Get(ctx, id)
}

// CreateLoan ties a new loan to propertyID. Without a purchase_id the loan
// is linked to the property's purchase details when they exist.
func (s *Service) CreateLoan(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Loan, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	row := fields.Clone()
	row["property_id"] = propertyID

	if !row.Has("purchase_id") {
		purchase, err := s.purchases.GetByProperty(ctx, propertyID)
		switch {
		case err == nil:
			row["purchase_id"] = purchase.ID
		case !errors.Is(err, domain.ErrPurchaseNotFound):
			return nil, err
		}
	} else if err := s.checkPurchase(ctx, propertyID, row["purchase_id"]); err != nil {
		return nil, err
	}

	return s.loans.Create(ctx, row)
}

func (s *Service) UpdateLoan(ctx context.Context, id int64, fields domain.Fields) (*domain.Loan, error) {
	if fields.Has("purchase_id") {
		loan, err := s.loans.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.checkPurchase(ctx, loan.PropertyID, fields["purchase_id"]); err != nil {
			return nil, err
		}
	}
	return s.loans.Update(ctx, id, fields)
}

func (s *Service) DeleteLoan(ctx context.Context, id int64) error {
	return s.loans.Delete(ctx, id)
}

// checkPurchase accepts NULL or the id of propertyID's purchase details.
func (s *Service) checkPurchase(ctx context.Context, propertyID int64, purchaseID any) error {
	if purchaseID == nil {
		return nil
	}

	purchase, err := s.purchases.GetByProperty(ctx, propertyID)
	if errors.Is(err, domain.ErrPurchaseNotFound) {
		return apperrors.InvalidField("purchase_id", "property has no purchase details")
	}
	if err != nil {
		return err
	}

	if id, ok := purchaseID.(int64); !ok || id != purchase.ID {
		return apperrors.InvalidField("purchase_id", "must reference this property's purchase details")
	}
	return nil
}
