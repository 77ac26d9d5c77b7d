package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/schema"
)

func (s *Server) registerLoanRoutes(api *echo.Group) {
	api.GET("/properties/:id/loans", s.handleListLoans)
	api.POST("/properties/:id/loans", s.handleCreateLoan)
	api.GET("/loans/:id", s.handleGetLoan)
	api.PATCH("/loans/:id", s.handleUpdateLoan)
	api.DELETE("/loans/:id", s.handleDeleteLoan)
}

func (s *Server) handleListLoans(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	loans, err := s.app.ListLoans(c.Request().Context(), propertyID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, newList(loans))
}

func (s *Server) handleCreateLoan(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Loans, schema.Create)
	if err != nil {
		return err
	}

	loan, err := s.app.CreateLoan(c.Request().Context(), propertyID, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, loan)
}

func (s *Server) handleGetLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	loan, err := s.app.GetLoan(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, loan)
}

func (s *Server) handleUpdateLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Loans, schema.Patch)
	if err != nil {
		return err
	}

	loan, err := s.app.UpdateLoan(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, loan)
}

func (s *Server) handleDeleteLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteLoan(c.Request().Context(), id); err != nil {
		return err
	}
	return writeNoContent(c)
}
