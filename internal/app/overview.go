package app

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/miketud/realestateapp/internal/domain"
)

// PropertyOverview gathers a property and the records linked to it.
type PropertyOverview struct {
	Property *domain.Property        `json:"property"`
	Purchase *domain.PurchaseDetails `json:"purchase"`
	Loans    []*domain.Loan          `json:"loans"`
	Contacts []*domain.Contact       `json:"contacts"`
	Counts   domain.RelatedCounts    `json:"counts"`
}

func (s *Service) PropertyOverview(ctx context.Context, id int64) (*PropertyOverview, error) {
	property, err := s.properties.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	purchase, err := s.purchases.GetByProperty(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrPurchaseNotFound) {
		return nil, err
	}

	loans, err := s.loans.ListByProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	contacts, err := s.contacts.List(ctx, domain.ContactFilter{PropertyID: &id})
	if err != nil {
		return nil, err
	}

	counts, err := s.properties.CountRelated(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PropertyOverview{
		Property: property,
		Purchase: purchase,
		Loans:    loans,
		Contacts: contacts,
		Counts:   counts,
	}, nil
}

// Totals are the cash-flow figures of a period. Expenses are reported by
// source: the payment log, expense transactions and loan payments made.
type Totals struct {
	RentDue             decimal.Decimal `json:"rent_due"`
	RentReceived        decimal.Decimal `json:"rent_received"`
	LateFees            decimal.Decimal `json:"late_fees"`
	PaymentLogExpenses  decimal.Decimal `json:"payment_log_expenses"`
	TransactionIncome   decimal.Decimal `json:"transaction_income"`
	TransactionExpenses decimal.Decimal `json:"transaction_expenses"`
	LoanPaymentsPaid    decimal.Decimal `json:"loan_payments_paid"`
	NetCashFlow         decimal.Decimal `json:"net_cash_flow"`
}

func zeroTotals() Totals {
	return Totals{
		RentDue:             decimal.Zero,
		RentReceived:        decimal.Zero,
		LateFees:            decimal.Zero,
		PaymentLogExpenses:  decimal.Zero,
		TransactionIncome:   decimal.Zero,
		TransactionExpenses: decimal.Zero,
		LoanPaymentsPaid:    decimal.Zero,
		NetCashFlow:         decimal.Zero,
	}
}

func (t *Totals) net() {
	t.NetCashFlow = t.RentReceived.
		Add(t.TransactionIncome).
		Sub(t.TransactionExpenses).
		Sub(t.PaymentLogExpenses).
		Sub(t.LoanPaymentsPaid)
}

// MonthSummary is one month of a YearSummary.
type MonthSummary struct {
	Month int `json:"month"`
	Totals
}

// YearSummary totals a property's ledgers for one calendar year, with
// the same figures broken down per month.
type YearSummary struct {
	PropertyID int64 `json:"property_id"`
	Year       int   `json:"year"`
	Totals
	Months []MonthSummary `json:"months"`
}

// PropertySummary computes the cash flow of a property for year; a nil
// year means the current one.
func (s *Service) PropertySummary(ctx context.Context, id int64, year *int) (*YearSummary, error) {
	if _, err := s.properties.Get(ctx, id); err != nil {
		return nil, err
	}

	y := s.clock.Now().Year()
	if year != nil {
		y = *year
	}

	sum := newYearSummary(id, y)

	rents, err := s.RentRoll.repo.List(ctx, id, &y)
	if err != nil {
		return nil, err
	}
	for _, r := range rents {
		for _, t := range sum.totals(r.Month) {
			t.RentDue = t.RentDue.Add(orZero(r.RentDue))
			t.RentReceived = t.RentReceived.Add(orZero(r.RentReceived))
			t.LateFees = t.LateFees.Add(orZero(r.LateFee))
		}
	}

	logs, err := s.PaymentLog.repo.List(ctx, id, &y)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		total := l.Total()
		for _, t := range sum.totals(l.Month) {
			t.PaymentLogExpenses = t.PaymentLogExpenses.Add(total)
		}
	}

	from, to := domain.NewDate(y, 1, 1), domain.NewDate(y, 12, 31)
	txns, err := s.transactions.List(ctx, domain.TransactionFilter{PropertyID: &id, From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		for _, t := range sum.totals(int(txn.TxnDate.Month())) {
			switch txn.TxnType {
			case domain.TxnIncome:
				t.TransactionIncome = t.TransactionIncome.Add(txn.Amount)
			case domain.TxnExpense:
				t.TransactionExpenses = t.TransactionExpenses.Add(txn.Amount)
			}
		}
	}

	loans, err := s.loans.ListByProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		payments, err := s.LoanPayments.repo.List(ctx, loan.ID, &y)
		if err != nil {
			return nil, err
		}
		for _, p := range payments {
			for _, t := range sum.totals(p.Month) {
				t.LoanPaymentsPaid = t.LoanPaymentsPaid.Add(orZero(p.AmountPaid))
			}
		}
	}

	sum.net()
	for i := range sum.Months {
		sum.Months[i].net()
	}

	return sum, nil
}

func newYearSummary(propertyID int64, year int) *YearSummary {
	sum := &YearSummary{
		PropertyID: propertyID,
		Year:       year,
		Totals:     zeroTotals(),
		Months:     make([]MonthSummary, 12),
	}
	for i := range sum.Months {
		sum.Months[i] = MonthSummary{Month: i + 1, Totals: zeroTotals()}
	}
	return sum
}

// totals returns the year totals and those of month m.
func (s *YearSummary) totals(m int) [2]*Totals {
	return [2]*Totals{&s.Totals, &s.Months[m-1].Totals}
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}
