// Package app provides the application service layer.
//
// Orchestrates use cases: the property field cascade (ZIP autofill, income
// inference), loan/purchase pairing, monthly ledger upserts and the yearly
// cash-flow summary. Sits between HTTP handlers and domain repositories.
// Depends on domain interfaces, not concrete implementations.
package app
