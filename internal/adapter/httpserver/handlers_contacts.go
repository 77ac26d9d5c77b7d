package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/schema"
)

func (s *Server) registerContactRoutes(api *echo.Group) {
	api.GET("/contacts", s.handleListContacts)
	api.POST("/contacts", s.handleCreateContact)
	api.GET("/properties/:id/contacts", s.handleListPropertyContacts)
	api.POST("/properties/:id/contacts", s.handleCreatePropertyContact)
	api.GET("/contacts/:id", s.handleGetContact)
	api.PATCH("/contacts/:id", s.handleUpdateContact)
	api.DELETE("/contacts/:id", s.handleDeleteContact)
}

func (s *Server) handleListContacts(c echo.Context) error {
	role, err := queryEnum(c, "role", domain.ContactRoles)
	if err != nil {
		return err
	}
	propertyID, err := queryID(c, "property_id")
	if err != nil {
		return err
	}

	contacts, err := s.app.ListContacts(c.Request().Context(), domain.ContactFilter{
		PropertyID: propertyID,
		Role:       role,
		Query:      strings.TrimSpace(c.QueryParam("q")),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, newList(contacts))
}

func (s *Server) handleListPropertyContacts(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	contacts, err := s.app.ListContacts(c.Request().Context(), domain.ContactFilter{PropertyID: &propertyID})
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, newList(contacts))
}

func (s *Server) handleCreateContact(c echo.Context) error {
	fields, err := readFields(c, schema.Contacts, schema.Create)
	if err != nil {
		return err
	}

	contact, err := s.app.CreateContact(c.Request().Context(), fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, contact)
}

func (s *Server) handleCreatePropertyContact(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, contactBody, schema.Create)
	if err != nil {
		return err
	}

	contact, err := s.app.CreatePropertyContact(c.Request().Context(), propertyID, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, contact)
}

// contactBody is the contact table for the nested route, where the path
// names the property.
var contactBody = schema.Contacts.Omit("property_id")

func (s *Server) handleGetContact(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	contact, err := s.app.GetContact(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, contact)
}

func (s *Server) handleUpdateContact(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Contacts, schema.Patch)
	if err != nil {
		return err
	}

	contact, err := s.app.UpdateContact(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, contact)
}

func (s *Server) handleDeleteContact(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteContact(c.Request().Context(), id); err != nil {
		return err
	}
	return writeNoContent(c)
}
