package app

import (
	"context"
	"fmt"

	"github.com/miketud/realestateapp/internal/domain"
)

// --- Mock implementations ---

type mockPropertyRepo struct {
	listFn         func(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error)
	getFn          func(ctx context.Context, id int64) (*domain.Property, error)
	createFn       func(ctx context.Context, fields domain.Fields) (*domain.Property, error)
	updateFn       func(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error)
	deleteFn       func(ctx context.Context, id int64) error
	countRelatedFn func(ctx context.Context, id int64) (domain.RelatedCounts, error)
}

func (m *mockPropertyRepo) List(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockPropertyRepo) Get(ctx context.Context, id int64) (*domain.Property, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &domain.Property{ID: id, Name: "Property"}, nil
}

func (m *mockPropertyRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Property, error) {
	if m.createFn != nil {
		return m.createFn(ctx, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockPropertyRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Property, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockPropertyRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPropertyRepo) CountRelated(ctx context.Context, id int64) (domain.RelatedCounts, error) {
	if m.countRelatedFn != nil {
		return m.countRelatedFn(ctx, id)
	}
	return domain.RelatedCounts{}, nil
}

type mockPurchaseRepo struct {
	getByPropertyFn    func(ctx context.Context, propertyID int64) (*domain.PurchaseDetails, error)
	upsertFn           func(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error)
	updateByPropertyFn func(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, error)
	deleteByPropertyFn func(ctx context.Context, propertyID int64) error
}

func (m *mockPurchaseRepo) GetByProperty(ctx context.Context, propertyID int64) (*domain.PurchaseDetails, error) {
	if m.getByPropertyFn != nil {
		return m.getByPropertyFn(ctx, propertyID)
	}
	return nil, domain.ErrPurchaseNotFound
}

func (m *mockPurchaseRepo) Upsert(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, propertyID, fields)
	}
	return nil, false, fmt.Errorf("not implemented")
}

func (m *mockPurchaseRepo) UpdateByProperty(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, error) {
	if m.updateByPropertyFn != nil {
		return m.updateByPropertyFn(ctx, propertyID, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockPurchaseRepo) DeleteByProperty(ctx context.Context, propertyID int64) error {
	if m.deleteByPropertyFn != nil {
		return m.deleteByPropertyFn(ctx, propertyID)
	}
	return nil
}

type mockLoanRepo struct {
	listByPropertyFn func(ctx context.Context, propertyID int64) ([]*domain.Loan, error)
	getFn            func(ctx context.Context, id int64) (*domain.Loan, error)
	createFn         func(ctx context.Context, fields domain.Fields) (*domain.Loan, error)
	updateFn         func(ctx context.Context, id int64, fields domain.Fields) (*domain.Loan, error)
	deleteFn         func(ctx context.Context, id int64) error
}

func (m *mockLoanRepo) ListByProperty(ctx context.Context, propertyID int64) ([]*domain.Loan, error) {
	if m.listByPropertyFn != nil {
		return m.listByPropertyFn(ctx, propertyID)
	}
	return nil, nil
}

func (m *mockLoanRepo) Get(ctx context.Context, id int64) (*domain.Loan, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrLoanNotFound
}

func (m *mockLoanRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Loan, error) {
	if m.createFn != nil {
		return m.createFn(ctx, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockLoanRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Loan, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockLoanRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockLedgerRepo[T any] struct {
	listFn   func(ctx context.Context, ownerID int64, year *int) ([]*T, error)
	getFn    func(ctx context.Context, id int64) (*T, error)
	upsertFn func(ctx context.Context, ownerID int64, period domain.Period, fields domain.Fields) (*T, bool, error)
	updateFn func(ctx context.Context, id int64, fields domain.Fields) (*T, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockLedgerRepo[T]) List(ctx context.Context, ownerID int64, year *int) ([]*T, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, year)
	}
	return nil, nil
}

func (m *mockLedgerRepo[T]) Get(ctx context.Context, id int64) (*T, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockLedgerRepo[T]) Upsert(ctx context.Context, ownerID int64, period domain.Period, fields domain.Fields) (*T, bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, ownerID, period, fields)
	}
	return nil, false, fmt.Errorf("not implemented")
}

func (m *mockLedgerRepo[T]) Update(ctx context.Context, id int64, fields domain.Fields) (*T, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockLedgerRepo[T]) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockTransactionRepo struct {
	listFn   func(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	getFn    func(ctx context.Context, id int64) (*domain.Transaction, error)
	createFn func(ctx context.Context, fields domain.Fields) (*domain.Transaction, error)
	updateFn func(ctx context.Context, id int64, fields domain.Fields) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockTransactionRepo) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *mockTransactionRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(ctx, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTransactionRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockContactRepo struct {
	listFn   func(ctx context.Context, filter domain.ContactFilter) ([]*domain.Contact, error)
	getFn    func(ctx context.Context, id int64) (*domain.Contact, error)
	createFn func(ctx context.Context, fields domain.Fields) (*domain.Contact, error)
	updateFn func(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockContactRepo) List(ctx context.Context, filter domain.ContactFilter) ([]*domain.Contact, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockContactRepo) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrContactNotFound
}

func (m *mockContactRepo) Create(ctx context.Context, fields domain.Fields) (*domain.Contact, error) {
	if m.createFn != nil {
		return m.createFn(ctx, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockContactRepo) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockContactRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockZipLookup struct {
	calls    int
	lookupFn func(ctx context.Context, zip string) (*domain.ZipLocation, error)
}

func (m *mockZipLookup) Lookup(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	m.calls++
	if m.lookupFn != nil {
		return m.lookupFn(ctx, zip)
	}
	return &domain.ZipLocation{Zip: zip, City: "Chicago", State: "IL"}, nil
}

// mockCachingZipLookup adds Invalidate to mockZipLookup.
type mockCachingZipLookup struct {
	mockZipLookup
	invalidated  []string
	invalidateFn func(ctx context.Context, zip string) error
}

func (m *mockCachingZipLookup) Invalidate(ctx context.Context, zip string) error {
	m.invalidated = append(m.invalidated, zip)
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx, zip)
	}
	return nil
}

// testRepos holds one mock per repository so tests can set behaviour
// after the service is built.
type testRepos struct {
	properties   *mockPropertyRepo
	purchases    *mockPurchaseRepo
	loans        *mockLoanRepo
	rentRoll     *mockLedgerRepo[domain.RentRoll]
	paymentLog   *mockLedgerRepo[domain.PaymentLog]
	loanPayments *mockLedgerRepo[domain.LoanPayment]
	transactions *mockTransactionRepo
	contacts     *mockContactRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		properties:   &mockPropertyRepo{},
		purchases:    &mockPurchaseRepo{},
		loans:        &mockLoanRepo{},
		rentRoll:     &mockLedgerRepo[domain.RentRoll]{},
		paymentLog:   &mockLedgerRepo[domain.PaymentLog]{},
		loanPayments: &mockLedgerRepo[domain.LoanPayment]{},
		transactions: &mockTransactionRepo{},
		contacts:     &mockContactRepo{},
	}
}

func (r *testRepos) repositories() Repositories {
	return Repositories{
		Properties:   r.properties,
		Purchases:    r.purchases,
		Loans:        r.loans,
		RentRoll:     r.rentRoll,
		PaymentLog:   r.paymentLog,
		LoanPayments: r.loanPayments,
		Transactions: r.transactions,
		Contacts:     r.contacts,
	}
}
