package httpserver

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/domain"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
	"github.com/miketud/realestateapp/internal/schema"
)

// ledgerHandlers serves one monthly table. Rows are listed and upserted
// under their owner and edited by their own id.
type ledgerHandlers[T any] struct {
	svc   ledgerService[T]
	table *schema.Table
	body  *schema.Table
}

func newLedgerHandlers[T any](svc ledgerService[T], table *schema.Table) *ledgerHandlers[T] {
	return &ledgerHandlers[T]{svc: svc, table: table, body: schema.LedgerBody(table)}
}

// register mounts the owner routes under ownerPath (which carries :id) and
// the row routes under rowPath.
func (h *ledgerHandlers[T]) register(api *echo.Group, ownerPath, rowPath string) {
	api.GET(ownerPath, h.list)
	api.PUT(ownerPath+"/:year/:month", h.upsert)
	api.GET(rowPath+"/:id", h.get)
	api.PATCH(rowPath+"/:id", h.update)
	api.DELETE(rowPath+"/:id", h.delete)
}

func (s *Server) registerLedgerRoutes(api *echo.Group) {
	newLedgerHandlers(s.ledgers.RentRoll, schema.RentRolls).
		register(api, "/properties/:id/rent-roll", "/rent-roll")
	newLedgerHandlers(s.ledgers.PaymentLog, schema.PaymentLogs).
		register(api, "/properties/:id/payment-log", "/payment-log")
	newLedgerHandlers(s.ledgers.LoanPayments, schema.LoanPayments).
		register(api, "/loans/:id/payments", "/loan-payments")
}

func (h *ledgerHandlers[T]) list(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	year, err := queryYear(c)
	if err != nil {
		return err
	}

	rows, err := h.svc.List(c.Request().Context(), ownerID, year)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, newList(rows))
}

func (h *ledgerHandlers[T]) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	row, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, row)
}

// upsert writes the row for the month in the path. An empty body creates
// an empty row or leaves an existing one unchanged.
func (h *ledgerHandlers[T]) upsert(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	period, err := pathPeriod(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	fields := domain.Fields{}
	if len(body) > 0 {
		raw, err := schema.Decode(body)
		if err != nil {
			return err
		}
		if len(raw) > 0 {
			if fields, err = h.body.Coerce(raw, schema.Patch); err != nil {
				return err
			}
		}
	}

	row, created, err := h.svc.Upsert(c.Request().Context(), ownerID, period, fields)
	if err != nil {
		return err
	}
	return writeUpsert(c, created, row)
}

func (h *ledgerHandlers[T]) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fields, err := readFields(c, h.table, schema.Patch)
	if err != nil {
		return err
	}

	row, err := h.svc.Update(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, row)
}

func (h *ledgerHandlers[T]) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return writeNoContent(c)
}

// pathPeriod reads :year and :month; the month may be a number or a name.
func pathPeriod(c echo.Context) (domain.Period, error) {
	year, err := schema.ParseYear(c.Param("year"))
	if err != nil {
		return domain.Period{}, apperrors.InvalidField("year", err.Error())
	}
	month, err := schema.ParseMonth(c.Param("month"))
	if err != nil {
		return domain.Period{}, apperrors.InvalidField("month", err.Error())
	}
	return domain.Period{Year: year, Month: month}, nil
}
