package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/schema"
)

func (s *Server) registerPurchaseRoutes(api *echo.Group) {
	api.GET("/properties/:id/purchase", s.handleGetPurchase)
	api.PUT("/properties/:id/purchase", s.handlePutPurchase)
	api.PATCH("/properties/:id/purchase", s.handleUpdatePurchase)
	api.DELETE("/properties/:id/purchase", s.handleDeletePurchase)
}

func (s *Server) handleGetPurchase(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	details, err := s.app.GetPurchase(c.Request().Context(), propertyID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, details)
}

// handlePutPurchase upserts: it creates the record or merges the supplied
// fields into the existing one.
func (s *Server) handlePutPurchase(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Purchases, schema.Create)
	if err != nil {
		return err
	}

	details, created, err := s.app.PutPurchase(c.Request().Context(), propertyID, fields)
	if err != nil {
		return err
	}
	return writeUpsert(c, created, details)
}

func (s *Server) handleUpdatePurchase(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Purchases, schema.Patch)
	if err != nil {
		return err
	}

	details, err := s.app.UpdatePurchase(c.Request().Context(), propertyID, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, details)
}

func (s *Server) handleDeletePurchase(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeletePurchase(c.Request().Context(), propertyID); err != nil {
		return err
	}
	return writeNoContent(c)
}
