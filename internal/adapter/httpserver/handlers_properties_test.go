package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miketud/realestateapp/internal/app"
	"github.com/miketud/realestateapp/internal/domain"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
)

func decodeError(t *testing.T, body []byte) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestListProperties_Filters(t *testing.T) {
	var got domain.PropertyFilter
	svc := &mockAppService{
		listPropertiesFn: func(_ context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
			got = filter
			return []*domain.Property{{ID: 1, Name: "Elm"}, {ID: 2, Name: "Oak"}}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := serve(srv, http.MethodGet, "/api/properties?status=Owner%20Occupied&property_type=condo&owner=%20Ann%20&q=elm", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PropertyFilter{Status: "owner_occupied", PropertyType: "condo", Owner: "Ann", Query: "elm"}, got)

	var resp struct {
		Items []domain.Property `json:"items"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Oak", resp.Items[1].Name)
}

func TestListProperties_EmptyIsArray(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := serve(srv, http.MethodGet, "/api/properties", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"count":0}`, rec.Body.String())
}

func TestListProperties_UnknownStatus(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := serve(srv, http.MethodGet, "/api/properties?status=haunted", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status", decodeError(t, rec.Body.Bytes()).Context["field"])
}

func TestGetProperty(t *testing.T) {
	svc := &mockAppService{
		getPropertyFn: func(_ context.Context, id int64) (*domain.Property, error) {
			if id == 7 {
				return &domain.Property{ID: 7, Name: "Elm"}, nil
			}
			return nil, fmt.Errorf("get property %d: %w", id, domain.ErrPropertyNotFound)
		},
	}
	srv := newTestServer(t, svc)

	t.Run("found", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/api/properties/7", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Elm"`)
	})

	t.Run("not found", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/api/properties/8", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeError(t, rec.Body.Bytes())
		assert.Equal(t, apperrors.TypeNotFound, resp.Type)
		assert.Equal(t, "property not found", resp.Error)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/api/properties/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateProperty(t *testing.T) {
	var got domain.Fields
	svc := &mockAppService{
		createPropertyFn: func(_ context.Context, fields domain.Fields) (*domain.Property, error) {
			got = fields
			return &domain.Property{ID: 1, Name: "Elm"}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := serve(srv, http.MethodPost, "/api/properties", `{"name":" Elm ","zip":"606011234","status":"Rented","units":"2"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Elm", got["name"])
	assert.Equal(t, "60601-1234", got["zip"])
	assert.Equal(t, "rented", got["status"])
	assert.Equal(t, 2, got["units"])
}

func TestCreateProperty_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"zip":"60601"}`, "name"},
		{"unknown field", `{"name":"Elm","colour":"red"}`, "colour"},
		{"read-only id", `{"name":"Elm","id":3}`, "id"},
		{"bad zip", `{"name":"Elm","zip":"abc"}`, "zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &mockAppService{})

			rec := serve(srv, http.MethodPost, "/api/properties", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec.Body.Bytes())
			assert.Equal(t, apperrors.TypeValidation, resp.Type)
			assert.Equal(t, tt.field, resp.Context["field"])
		})
	}
}

func TestCreateProperty_NotAnObject(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := serve(srv, http.MethodPost, "/api/properties", `[1,2]`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceAndUpdateProperty(t *testing.T) {
	var replaced, updated domain.Fields
	svc := &mockAppService{
		replacePropertyFn: func(_ context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
			replaced = fields
			return &domain.Property{ID: id}, nil
		},
		updatePropertyFn: func(_ context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
			updated = fields
			return &domain.Property{ID: id}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := serve(srv, http.MethodPut, "/api/properties/3", `{"name":"Elm"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Fields{"name": "Elm"}, replaced)

	rec = serve(srv, http.MethodPut, "/api/properties/3", `{"notes":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "PUT requires name")

	rec = serve(srv, http.MethodPatch, "/api/properties/3", `{"notes":"  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Fields{"notes": nil}, updated)

	rec = serve(srv, http.MethodPatch, "/api/properties/3", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(srv, http.MethodPatch, "/api/properties/3", `{"name":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProperty(t *testing.T) {
	var deleted int64
	svc := &mockAppService{
		deletePropertyFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	srv := newTestServer(t, svc)

	rec := serve(srv, http.MethodDelete, "/api/properties/4", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), deleted)
}

func TestPropertySummary(t *testing.T) {
	var gotYear *int
	svc := &mockAppService{
		propertySummaryFn: func(_ context.Context, id int64, year *int) (*app.YearSummary, error) {
			gotYear = year
			sum := &app.YearSummary{
				PropertyID: id,
				Year:       *year,
				Totals:     app.Totals{NetCashFlow: decimal.RequireFromString("1099.25")},
			}
			sum.Months = []app.MonthSummary{{Month: 1, Totals: app.Totals{RentDue: decimal.RequireFromString("1000")}}}
			return sum, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := serve(srv, http.MethodGet, "/api/properties/7/summary?year=2024", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotYear)
	assert.Equal(t, 2024, *gotYear)
	assert.Contains(t, rec.Body.String(), `"net_cash_flow":"1099.25"`)
	assert.Contains(t, rec.Body.String(), `"months":[{"month":1,"rent_due":"1000"`)

	rec = serve(srv, http.MethodGet, "/api/properties/7/summary?year=1800", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPropertyOverview(t *testing.T) {
	svc := &mockAppService{
		propertyOverviewFn: func(_ context.Context, id int64) (*app.PropertyOverview, error) {
			return &app.PropertyOverview{
				Property: &domain.Property{ID: id, Name: "Elm"},
				Counts:   domain.RelatedCounts{RentRoll: 12},
			}, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := serve(srv, http.MethodGet, "/api/properties/7/overview", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rent_roll":12`)
	assert.Contains(t, rec.Body.String(), `"purchase":null`)
}

func TestPurchaseRoutes(t *testing.T) {
	created := true
	svc := &mockAppService{
		putPurchaseFn: func(_ context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error) {
			assert.True(t, fields["purchase_price"].(decimal.Decimal).Equal(decimal.RequireFromString("250000")))
			return &domain.PurchaseDetails{ID: 1, PropertyID: propertyID}, created, nil
		},
	}
	srv := newTestServer(t, svc)

	rec := serve(srv, http.MethodPut, "/api/properties/5/purchase", `{"purchase_price":"$250,000.00"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	created = false
	rec = serve(srv, http.MethodPut, "/api/properties/5/purchase", `{"purchase_price":250000}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(srv, http.MethodGet, "/api/properties/5/purchase", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
