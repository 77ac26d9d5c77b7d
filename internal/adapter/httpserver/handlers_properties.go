package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/schema"
)

func (s *Server) registerPropertyRoutes(api *echo.Group) {
	api.GET("/properties", s.handleListProperties)
	api.POST("/properties", s.handleCreateProperty)
	api.GET("/properties/:id", s.handleGetProperty)
	api.PUT("/properties/:id", s.handleReplaceProperty)
	api.PATCH("/properties/:id", s.handleUpdateProperty)
	api.DELETE("/properties/:id", s.handleDeleteProperty)
	api.GET("/properties/:id/overview", s.handlePropertyOverview)
	api.GET("/properties/:id/summary", s.handlePropertySummary)
}

func (s *Server) handleListProperties(c echo.Context) error {
	status, err := queryEnum(c, "status", domain.PropertyStatuses)
	if err != nil {
		return err
	}
	propertyType, err := queryEnum(c, "property_type", domain.PropertyTypes)
	if err != nil {
		return err
	}

	properties, err := s.app.ListProperties(c.Request().Context(), domain.PropertyFilter{
		Status:       status,
		PropertyType: propertyType,
		Owner:        strings.TrimSpace(c.QueryParam("owner")),
		Query:        strings.TrimSpace(c.QueryParam("q")),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, newList(properties))
}

func (s *Server) handleGetProperty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	property, err := s.app.GetProperty(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, property)
}

func (s *Server) handleCreateProperty(c echo.Context) error {
	fields, err := readFields(c, schema.Properties, schema.Create)
	if err != nil {
		return err
	}

	property, err := s.app.CreateProperty(c.Request().Context(), fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, property)
}

func (s *Server) handleReplaceProperty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Properties, schema.Create)
	if err != nil {
		return err
	}

	property, err := s.app.ReplaceProperty(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, property)
}

func (s *Server) handleUpdateProperty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Properties, schema.Patch)
	if err != nil {
		return err
	}

	property, err := s.app.UpdateProperty(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, property)
}

func (s *Server) handleDeleteProperty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteProperty(c.Request().Context(), id); err != nil {
		return err
	}
	return writeNoContent(c)
}

func (s *Server) handlePropertyOverview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	overview, err := s.app.PropertyOverview(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, overview)
}

func (s *Server) handlePropertySummary(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	year, err := queryYear(c)
	if err != nil {
		return err
	}

	summary, err := s.app.PropertySummary(c.Request().Context(), id, year)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, summary)
}
