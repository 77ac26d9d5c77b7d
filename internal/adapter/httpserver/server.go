package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/miketud/realestateapp/internal/adapter/metrics"
	"github.com/miketud/realestateapp/internal/app"
	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/platform/config"
)

type appService interface {
	ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error)
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	CreateProperty(ctx context.Context, fields domain.Fields) (*domain.Property, error)
	ReplaceProperty(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error)
	UpdateProperty(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
	PropertyOverview(ctx context.Context, id int64) (*app.PropertyOverview, error)
	PropertySummary(ctx context.Context, id int64, year *int) (*app.YearSummary, error)
	LookupZip(ctx context.Context, zip string) (*domain.ZipLocation, error)
	RefreshZip(ctx context.Context, zip string) (*domain.ZipLocation, error)

	GetPurchase(ctx context.Context, propertyID int64) (*domain.PurchaseDetails, error)
	PutPurchase(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error)
	UpdatePurchase(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, error)
	DeletePurchase(ctx context.Context, propertyID int64) error

	ListLoans(ctx context.Context, propertyID int64) ([]*domain.Loan, error)
	GetLoan(ctx context.Context, id int64) (*domain.Loan, error)
	CreateLoan(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Loan, error)
	UpdateLoan(ctx context.Context, id int64, fields domain.Fields) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, id int64) error

	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, fields domain.Fields) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	ListContacts(ctx context.Context, filter domain.ContactFilter) ([]*domain.Contact, error)
	GetContact(ctx context.Context, id int64) (*domain.Contact, error)
	CreateContact(ctx context.Context, fields domain.Fields) (*domain.Contact, error)
	CreatePropertyContact(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.Contact, error)
	UpdateContact(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

// ledgerService is the monthly-table API; *app.Ledger implements it.
type ledgerService[T any] interface {
	List(ctx context.Context, ownerID int64, year *int) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Upsert(ctx context.Context, ownerID int64, period domain.Period, fields domain.Fields) (*T, bool, error)
	Update(ctx context.Context, id int64, fields domain.Fields) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Ledgers groups the three monthly tables served by the API.
type Ledgers struct {
	RentRoll     ledgerService[domain.RentRoll]
	PaymentLog   ledgerService[domain.PaymentLog]
	LoanPayments ledgerService[domain.LoanPayment]
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app     appService
	ledgers Ledgers

	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck
	startTime    time.Time
}

// NewServer builds the echo instance and registers every route. registry
// may be nil, which disables /metrics.
func NewServer(cfg *config.Config, app appService, ledgers Ledgers, registry *prometheus.Registry, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = httpErrorHandler

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		ledgers:      ledgers,
		registry:     registry,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}
	if registry != nil {
		srv.httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
