package app

import (
	"context"
	"errors"

	"github.com/miketud/realestateapp/internal/domain"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
)

func (s *Service) ListContacts(ctx context.Context, filter domain.ContactFilter) ([]*domain.Contact, error) {
	if filter.PropertyID != nil {
		if err := s.requireProperty(ctx, *filter.PropertyID); err != nil {
			return nil, err
		}
	}
	return s.contacts.List(ctx, filter)
}

func (s *Service) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.contacts.Get(ctx, id)
}

// CreateContact stores an address-book entry. A property_id in fields must
// name an existing property.
func (s *Service) CreateContact(ctx context.Context, fields domain.Fields) (*domain.Contact, error) {
	if err := s.checkContactProperty(ctx, fields); err != nil {
		return nil, err
	}
	return s.contacts.Create(ctx, fields)
}

// CreatePropertyContact stores a contact linked to propertyID.
func (s *Service) CreatePropertyContact(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Contact, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	row := fields.Clone()
	row["property_id"] = propertyID
	return s.contacts.Create(ctx, row)
}

func (s *Service) UpdateContact(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error) {
	if err := s.checkContactProperty(ctx, fields); err != nil {
		return nil, err
	}
	return s.contacts.Update(ctx, id, fields)
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	return s.contacts.Delete(ctx, id)
}

func (s *Service) checkContactProperty(ctx context.Context, fields domain.Fields) error {
	id, ok := fields["property_id"].(int64)
	if !ok {
		return nil
	}
	err := s.requireProperty(ctx, id)
	if errors.Is(err, domain.ErrPropertyNotFound) {
		return apperrors.InvalidField("property_id", "property does not exist")
	}
	return err
}
