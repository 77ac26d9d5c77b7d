package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/app"
	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/platform/config"
)

var errNotImplemented = errors.New("not implemented")

// --- Mock implementations ---

type mockAppService struct {
	listPropertiesFn        func(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error)
	getPropertyFn           func(ctx context.Context, id int64) (*domain.Property, error)
	createPropertyFn        func(ctx context.Context, fields domain.Fields) (*domain.Property, error)
	replacePropertyFn       func(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error)
	updatePropertyFn        func(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error)
	deletePropertyFn        func(ctx context.Context, id int64) error
	propertyOverviewFn      func(ctx context.Context, id int64) (*app.PropertyOverview, error)
	propertySummaryFn       func(ctx context.Context, id int64, year *int) (*app.YearSummary, error)
	lookupZipFn             func(ctx context.Context, zip string) (*domain.ZipLocation, error)
	refreshZipFn            func(ctx context.Context, zip string) (*domain.ZipLocation, error)
	getPurchaseFn           func(ctx context.Context, propertyID int64) (*domain.PurchaseDetails, error)
	putPurchaseFn           func(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error)
	updatePurchaseFn        func(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, error)
	deletePurchaseFn        func(ctx context.Context, propertyID int64) error
	listLoansFn             func(ctx context.Context, propertyID int64) ([]*domain.Loan, error)
	getLoanFn               func(ctx context.Context, id int64) (*domain.Loan, error)
	createLoanFn            func(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Loan, error)
	updateLoanFn            func(ctx context.Context, id int64, fields domain.Fields) (*domain.Loan, error)
	deleteLoanFn            func(ctx context.Context, id int64) error
	listTransactionsFn      func(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	getTransactionFn        func(ctx context.Context, id int64) (*domain.Transaction, error)
	createTransactionFn     func(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Transaction, error)
	updateTransactionFn     func(ctx context.Context, id int64, fields domain.Fields) (*domain.Transaction, error)
	deleteTransactionFn     func(ctx context.Context, id int64) error
	listContactsFn          func(ctx context.Context, filter domain.ContactFilter) ([]*domain.Contact, error)
	getContactFn            func(ctx context.Context, id int64) (*domain.Contact, error)
	createContactFn         func(ctx context.Context, fields domain.Fields) (*domain.Contact, error)
	createPropertyContactFn func(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Contact, error)
	updateContactFn         func(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error)
	deleteContactFn         func(ctx context.Context, id int64) error
}

func (m *mockAppService) ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
	if m.listPropertiesFn != nil {
		return m.listPropertiesFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAppService) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	if m.getPropertyFn != nil {
		return m.getPropertyFn(ctx, id)
	}
	return nil, domain.ErrPropertyNotFound
}

func (m *mockAppService) CreateProperty(ctx context.Context, fields domain.Fields) (*domain.Property, error) {
	if m.createPropertyFn != nil {
		return m.createPropertyFn(ctx, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) ReplaceProperty(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
	if m.replacePropertyFn != nil {
		return m.replacePropertyFn(ctx, id, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) UpdateProperty(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
	if m.updatePropertyFn != nil {
		return m.updatePropertyFn(ctx, id, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeleteProperty(ctx context.Context, id int64) error {
	if m.deletePropertyFn != nil {
		return m.deletePropertyFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) PropertyOverview(ctx context.Context, id int64) (*app.PropertyOverview, error) {
	if m.propertyOverviewFn != nil {
		return m.propertyOverviewFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) PropertySummary(ctx context.Context, id int64, year *int) (*app.YearSummary, error) {
	if m.propertySummaryFn != nil {
		return m.propertySummaryFn(ctx, id, year)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) LookupZip(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	if m.lookupZipFn != nil {
		return m.lookupZipFn(ctx, zip)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) RefreshZip(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	if m.refreshZipFn != nil {
		return m.refreshZipFn(ctx, zip)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) GetPurchase(ctx context.Context, propertyID int64) (*domain.PurchaseDetails, error) {
	if m.getPurchaseFn != nil {
		return m.getPurchaseFn(ctx, propertyID)
	}
	return nil, domain.ErrPurchaseNotFound
}

func (m *mockAppService) PutPurchase(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error) {
	if m.putPurchaseFn != nil {
		return m.putPurchaseFn(ctx, propertyID, fields)
	}
	return nil, false, errNotImplemented
}

func (m *mockAppService) UpdatePurchase(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, error) {
	if m.updatePurchaseFn != nil {
		return m.updatePurchaseFn(ctx, propertyID, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeletePurchase(ctx context.Context, propertyID int64) error {
	if m.deletePurchaseFn != nil {
		return m.deletePurchaseFn(ctx, propertyID)
	}
	return nil
}

func (m *mockAppService) ListLoans(ctx context.Context, propertyID int64) ([]*domain.Loan, error) {
	if m.listLoansFn != nil {
		return m.listLoansFn(ctx, propertyID)
	}
	return nil, nil
}

func (m *mockAppService) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	if m.getLoanFn != nil {
		return m.getLoanFn(ctx, id)
	}
	return nil, domain.ErrLoanNotFound
}

func (m *mockAppService) CreateLoan(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Loan, error) {
	if m.createLoanFn != nil {
		return m.createLoanFn(ctx, propertyID, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) UpdateLoan(ctx context.Context, id int64, fields domain.Fields) (*domain.Loan, error) {
	if m.updateLoanFn != nil {
		return m.updateLoanFn(ctx, id, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeleteLoan(ctx context.Context, id int64) error {
	if m.deleteLoanFn != nil {
		return m.deleteLoanFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAppService) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	if m.getTransactionFn != nil {
		return m.getTransactionFn(ctx, id)
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *mockAppService) CreateTransaction(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(ctx, propertyID, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) UpdateTransaction(ctx context.Context, id int64, fields domain.Fields) (*domain.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(ctx, id, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeleteTransaction(ctx context.Context, id int64) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) ListContacts(ctx context.Context, filter domain.ContactFilter) ([]*domain.Contact, error) {
	if m.listContactsFn != nil {
		return m.listContactsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAppService) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	if m.getContactFn != nil {
		return m.getContactFn(ctx, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *mockAppService) CreateContact(ctx context.Context, fields domain.Fields) (*domain.Contact, error) {
	if m.createContactFn != nil {
		return m.createContactFn(ctx, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) CreatePropertyContact(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Contact, error) {
	if m.createPropertyContactFn != nil {
		return m.createPropertyContactFn(ctx, propertyID, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) UpdateContact(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error) {
	if m.updateContactFn != nil {
		return m.updateContactFn(ctx, id, fields)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeleteContact(ctx context.Context, id int64) error {
	if m.deleteContactFn != nil {
		return m.deleteContactFn(ctx, id)
	}
	return nil
}
type mockLedger[T any] struct {
	listFn   func(ctx context.Context, ownerID int64, year *int) ([]*T, error)
	getFn    func(ctx context.Context, id int64) (*T, error)
	upsertFn func(ctx context.Context, ownerID int64, period domain.Period, fields domain.Fields) (*T, bool, error)
	updateFn func(ctx context.Context, id int64, fields domain.Fields) (*T, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockLedger[T]) List(ctx context.Context, ownerID int64, year *int) ([]*T, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, year)
	}
	return nil, nil
}

func (m *mockLedger[T]) Get(ctx context.Context, id int64) (*T, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockLedger[T]) Upsert(ctx context.Context, ownerID int64, period domain.Period, fields domain.Fields) (*T, bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, ownerID, period, fields)
	}
	return nil, false, errNotImplemented
}

func (m *mockLedger[T]) Update(ctx context.Context, id int64, fields domain.Fields) (*T, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, errNotImplemented
}

func (m *mockLedger[T]) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Test helpers ---

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		CORSOrigins:    "http://localhost:3000",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		BodyLimit:      "1M",
	}
}

func newTestServer(t *testing.T, app appService, opts ...func(*Server)) *Server {
	t.Helper()

	e := echo.New()
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = httpErrorHandler

	srv := &Server{
		echo:   e,
		config: testConfig(),
		app:    app,
		ledgers: Ledgers{
			RentRoll:     &mockLedger[domain.RentRoll]{},
			PaymentLog:   &mockLedger[domain.PaymentLog]{},
			LoanPayments: &mockLedger[domain.LoanPayment]{},
		},
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

func withLedgers(ledgers Ledgers) func(*Server) {
	return func(s *Server) {
		s.ledgers = ledgers
	}
}

func withStaticDir(dir string) func(*Server) {
	return func(s *Server) {
		s.config.StaticDir = dir
	}
}

// serve runs a request through the full router and middleware chain.
func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}
