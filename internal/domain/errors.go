package domain

import "errors"

var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrPurchaseNotFound    = errors.New("purchase details not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanPaymentNotFound = errors.New("loan payment not found")
	ErrRentRollNotFound    = errors.New("rent roll entry not found")
	ErrPaymentLogNotFound  = errors.New("payment log entry not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrContactNotFound     = errors.New("contact not found")

	// ErrConflict reports a unique constraint violation.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference reports a foreign key that points nowhere.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrInvalidValue reports a value rejected by a check constraint.
	ErrInvalidValue = errors.New("value violates a constraint")

	ErrZipNotFound         = errors.New("zip code not found")
	ErrGeocoderUnavailable = errors.New("geocoding service unavailable")
)
