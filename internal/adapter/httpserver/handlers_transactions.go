package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/schema"
)

func (s *Server) registerTransactionRoutes(api *echo.Group) {
	api.GET("/transactions", s.handleListTransactions)
	api.GET("/properties/:id/transactions", s.handleListPropertyTransactions)
	api.POST("/properties/:id/transactions", s.handleCreateTransaction)
	api.GET("/transactions/:id", s.handleGetTransaction)
	api.PATCH("/transactions/:id", s.handleUpdateTransaction)
	api.DELETE("/transactions/:id", s.handleDeleteTransaction)
}

// transactionFilter reads from, to, txn_type and category.
func transactionFilter(c echo.Context) (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter
	var err error

	if filter.From, err = queryDate(c, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		return filter, err
	}
	if filter.TxnType, err = queryEnum(c, "txn_type", domain.TransactionTypes); err != nil {
		return filter, err
	}
	filter.Category = strings.TrimSpace(c.QueryParam("category"))
	return filter, nil
}

func (s *Server) handleListTransactions(c echo.Context) error {
	filter, err := transactionFilter(c)
	if err != nil {
		return err
	}
	if filter.PropertyID, err = queryID(c, "property_id"); err != nil {
		return err
	}

	txns, err := s.app.ListTransactions(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, newList(txns))
}

func (s *Server) handleListPropertyTransactions(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	filter, err := transactionFilter(c)
	if err != nil {
		return err
	}
	filter.PropertyID = &propertyID

	txns, err := s.app.ListTransactions(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, newList(txns))
}

func (s *Server) handleCreateTransaction(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Transactions, schema.Create)
	if err != nil {
		return err
	}

	txn, err := s.app.CreateTransaction(c.Request().Context(), propertyID, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, txn)
}

func (s *Server) handleGetTransaction(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	txn, err := s.app.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, txn)
}

func (s *Server) handleUpdateTransaction(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, schema.Transactions, schema.Patch)
	if err != nil {
		return err
	}

	txn, err := s.app.UpdateTransaction(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, txn)
}

func (s *Server) handleDeleteTransaction(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteTransaction(c.Request().Context(), id); err != nil {
		return err
	}
	return writeNoContent(c)
}
