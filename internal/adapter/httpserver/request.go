package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/domain"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
	"github.com/miketud/realestateapp/internal/schema"
)

// listResponse wraps every collection returned by the API.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidField(name, "must be a positive integer").WithField("value", raw)
	}
	return id, nil
}

// readFields decodes the JSON body and coerces it against table.
func readFields(c echo.Context, table *schema.Table, mode schema.Mode) (domain.Fields, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return table.Parse(body, mode)
}

// queryYear parses the optional ?year= filter.
func queryYear(c echo.Context) (*int, error) {
	raw := c.QueryParam("year")
	if raw == "" {
		return nil, nil
	}
	year, err := schema.ParseYear(raw)
	if err != nil {
		return nil, apperrors.InvalidField("year", err.Error())
	}
	return &year, nil
}

func queryDate(c echo.Context, name string) (*domain.Date, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := schema.ParseDate(raw)
	if err != nil {
		return nil, apperrors.InvalidField(name, err.Error())
	}
	return &d, nil
}

func queryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.InvalidField(name, "must be a positive integer")
	}
	return &id, nil
}

// queryEnum normalises an enum filter and checks it against allowed.
func queryEnum(c echo.Context, name string, allowed []string) (string, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return "", nil
	}
	v := schema.NormalizeEnum(raw)
	if !slices.Contains(allowed, v) {
		return "", apperrors.InvalidField(name, "unknown value").WithField("value", raw)
	}
	return v, nil
}

func writeJSON(c echo.Context, status int, v any) error {
	if err := c.JSON(status, v); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// writeUpsert answers 201 when the row was inserted and 200 otherwise.
func writeUpsert(c echo.Context, created bool, v any) error {
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return writeJSON(c, status, v)
}

func writeNoContent(c echo.Context) error {
	if err := c.NoContent(http.StatusNoContent); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}
	return nil
}
