package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
	"github.com/miketud/realestateapp/internal/schema"
)

// handleLookupZip resolves a ZIP to city and state for form prefill.
// ?refresh=true bypasses cached answers.
func (s *Server) handleLookupZip(c echo.Context) error {
	raw := c.Param("zip")
	zip, err := schema.NormalizeZip(raw)
	if err != nil {
		return apperrors.InvalidField("zip", err.Error()).WithField("value", raw)
	}

	var refresh bool
	if err := echo.QueryParamsBinder(c).Bool("refresh", &refresh).BindError(); err != nil {
		return apperrors.InvalidField("refresh", "must be true or false")
	}

	lookup := s.app.LookupZip
	if refresh {
		lookup = s.app.RefreshZip
	}
	loc, err := lookup(c.Request().Context(), zip)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, loc)
}
