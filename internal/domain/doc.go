// Package domain defines the portfolio entities and the contracts between
// the application layer and its adapters.
//
// Files are concept-oriented (property.go, ledger.go, ...). No persistence or
// transport code lives here; interfaces are implemented by the postgres,
// redis and geocode adapters.
package domain
