package app

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/miketud/realestateapp/internal/domain"
)

// Repositories bundles the storage the service works on.
type Repositories struct {
	Properties   domain.PropertyRepository
	Purchases    domain.PurchaseRepository
	Loans        domain.LoanRepository
	RentRoll     domain.RentRollRepository
	PaymentLog   domain.PaymentLogRepository
	LoanPayments domain.LoanPaymentRepository
	Transactions domain.TransactionRepository
	Contacts     domain.ContactRepository
}

// Service is the application layer. It is the only component that
// references multiple repositories.
type Service struct {
	properties   domain.PropertyRepository
	purchases    domain.PurchaseRepository
	loans        domain.LoanRepository
	transactions domain.TransactionRepository
	contacts     domain.ContactRepository
	zips         domain.ZipLookup
	clock        clockwork.Clock

	RentRoll     *Ledger[domain.RentRoll]
	PaymentLog   *Ledger[domain.PaymentLog]
	LoanPayments *Ledger[domain.LoanPayment]
}

// NewService creates the application layer service.
// zips may be nil, which disables ZIP autofill.
func NewService(repos Repositories, zips domain.ZipLookup, clock clockwork.Clock) *Service {
	s := &Service{
		properties:   repos.Properties,
		purchases:    repos.Purchases,
		loans:        repos.Loans,
		transactions: repos.Transactions,
		contacts:     repos.Contacts,
		zips:         zips,
		clock:        clock,
	}

	s.RentRoll = NewLedger(repos.RentRoll, s.requireProperty)
	s.PaymentLog = NewLedger(repos.PaymentLog, s.requireProperty)
	s.LoanPayments = NewLedger(repos.LoanPayments, s.requireLoan)
	return s
}

func (s *Service) requireProperty(ctx context.Context, id int64) error {
	_, err := s.properties.Get(ctx, id)
	return err
}

func (s *Service) requireLoan(ctx context.Context, id int64) error {
	_, err := s.loans.Get(ctx, id)
	return err
}
