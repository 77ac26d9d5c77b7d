package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/schema"
)

func (s *Service) ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
	return s.properties.List(ctx, filter)
}

func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	return s.properties.Get(ctx, id)
}

func (s *Service) CreateProperty(ctx context.Context, fields domain.Fields) (*domain.Property, error) {
	fields = s.derive(ctx, fields, nil)
	return s.properties.Create(ctx, fields)
}

// ReplaceProperty is a full update: writable columns missing from fields
// are cleared.
func (s *Service) ReplaceProperty(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
	if _, err := s.properties.Get(ctx, id); err != nil {
		return nil, err
	}

	// nothing stored survives a replace, so the cascade runs as on create
	fields = s.derive(ctx, fields, nil)
	return s.properties.Update(ctx, id, schema.Properties.Complete(fields))
}

// UpdateProperty changes only the given columns. It backs inline editing,
// where a single cell edit sends a single field.
func (s *Service) UpdateProperty(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
	current, err := s.properties.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields = s.derive(ctx, fields, current)
	return s.properties.Update(ctx, id, fields)
}

func (s *Service) DeleteProperty(ctx context.Context, id int64) error {
	return s.properties.Delete(ctx, id)
}

// derive applies the field cascade to a property write: ZIP autofill of
// city and state, then income inference from status. Values present in
// the request always win. current is nil on create and replace.
func (s *Service) derive(ctx context.Context, fields domain.Fields, current *domain.Property) domain.Fields {
	out := fields.Clone()
	s.fillFromZip(ctx, out, current)

	if status, ok := out.String("status"); ok && !out.Has("income_producing") {
		if incomeProducing, ok := domain.IncomeProducingFor(status); ok {
			out["income_producing"] = incomeProducing
		}
	}

	return out
}

func (s *Service) fillFromZip(ctx context.Context, fields domain.Fields, current *domain.Property) {
	zip, ok := fields.String("zip")
	if !ok || s.zips == nil {
		return
	}

	changed := current == nil || current.Zip == nil || *current.Zip != zip
	wantCity := !fields.Has("city") && (changed || isBlank(current.City))
	wantState := !fields.Has("state") && (changed || isBlank(current.State))
	if !wantCity && !wantState {
		return
	}

	loc, err := s.zips.Lookup(ctx, zip[:5])
	if err != nil {
		// the write goes ahead without autofill
		level := slog.LevelWarn
		if errors.Is(err, domain.ErrZipNotFound) {
			level = slog.LevelInfo
		}
		slog.Log(ctx, level, "ZIP autofill skipped", "zip", zip, "error", err)
		return
	}

	if wantCity && loc.City != "" {
		fields["city"] = loc.City
	}
	if wantState && loc.State != "" {
		fields["state"] = loc.State
	}
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

// RefreshZip drops any cached answer for zip before looking it up again,
// so a stale "not found" clears once the provider knows the code.
func (s *Service) RefreshZip(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	if inv, ok := s.zips.(domain.ZipInvalidator); ok {
		if err := inv.Invalidate(ctx, zip[:5]); err != nil {
			slog.WarnContext(ctx, "ZIP cache invalidation failed", "zip", zip, "error", err)
		}
	}
	return s.LookupZip(ctx, zip)
}

// LookupZip resolves a ZIP for the prefill endpoint.
func (s *Service) LookupZip(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	if s.zips == nil {
		return nil, domain.ErrGeocoderUnavailable
	}
	loc, err := s.zips.Lookup(ctx, zip[:5])
	if err != nil {
		return nil, err
	}
	out := *loc
	out.Zip = zip
	return &out, nil
}
