package schema

import "github.com/miketud/realestateapp/internal/domain"

func bound(n int64) *int64 { return &n }

// money matches NUMERIC(14,2).
func money(name string) Field {
	return Field{Name: name, Kind: KindDecimal, Digits: 14, Scale: 2}
}

func price(name string) Field {
	f := money(name)
	f.NonNeg = true
	return f
}

func notes() Field {
	return Field{Name: "notes", Kind: KindText, MaxLen: 4000}
}

func textField(name string, maxLen int) Field {
	return Field{Name: name, Kind: KindText, MaxLen: maxLen}
}

var Properties = NewTable("properties",
	Field{Name: "name", Kind: KindText, Required: true, MaxLen: 200},
	textField("address", 300),
	textField("city", 120),
	Field{Name: "state", Kind: KindState},
	Field{Name: "zip", Kind: KindZip},
	textField("owner", 200),
	Field{Name: "property_type", Kind: KindEnum, Enum: domain.PropertyTypes},
	Field{Name: "status", Kind: KindEnum, Enum: domain.PropertyStatuses},
	Field{Name: "income_producing", Kind: KindBool},
	Field{Name: "units", Kind: KindInt, Min: bound(0), Max: bound(10000)},
	notes(),
)

// Purchases is keyed by the property in the route.
var Purchases = NewTable("purchase_details",
	Field{Name: "purchase_date", Kind: KindDate},
	price("purchase_price"),
	price("down_payment"),
	price("closing_costs"),
	textField("seller", 200),
	textField("title_company", 200),
	notes(),
).ReadOnly("property_id")

var Loans = NewTable("loan_details",
	Field{Name: "purchase_id", Kind: KindRef},
	textField("lender", 200),
	textField("loan_number", 100),
	Field{Name: "loan_type", Kind: KindEnum, Enum: domain.LoanTypes},
	price("original_amount"),
	Field{Name: "interest_rate", Kind: KindDecimal, Digits: 7, Scale: 4, NonNeg: true},
	Field{Name: "term_months", Kind: KindInt, Min: bound(1), Max: bound(600)},
	Field{Name: "start_date", Kind: KindDate},
	Field{Name: "maturity_date", Kind: KindDate},
	price("monthly_payment"),
	Field{Name: "escrow_included", Kind: KindBool},
	notes(),
).ReadOnly("property_id")

var RentRolls = NewTable("rent_roll",
	Field{Name: "month", Kind: KindMonth, Required: true},
	Field{Name: "year", Kind: KindYear, Required: true},
	textField("tenant_name", 200),
	money("rent_due"),
	money("rent_received"),
	Field{Name: "date_received", Kind: KindDate},
	money("late_fee"),
	notes(),
).ReadOnly("property_id")

var PaymentLogs = NewTable("payment_log",
	Field{Name: "month", Kind: KindMonth, Required: true},
	Field{Name: "year", Kind: KindYear, Required: true},
	money("mortgage"),
	money("property_tax"),
	money("insurance"),
	money("hoa"),
	money("utilities"),
	money("maintenance"),
	money("other"),
	notes(),
).ReadOnly("property_id")

var LoanPayments = NewTable("loan_payments",
	Field{Name: "month", Kind: KindMonth, Required: true},
	Field{Name: "year", Kind: KindYear, Required: true},
	money("amount_due"),
	money("amount_paid"),
	money("principal"),
	money("interest"),
	money("escrow"),
	Field{Name: "paid_date", Kind: KindDate},
	notes(),
).ReadOnly("loan_id")

var Transactions = NewTable("transactions",
	Field{Name: "txn_date", Kind: KindDate, Required: true},
	Field{Name: "txn_type", Kind: KindEnum, Enum: domain.TransactionTypes, Required: true},
	textField("category", 100),
	Field{Name: "amount", Kind: KindDecimal, Digits: 14, Scale: 2, Required: true},
	textField("payee", 200),
	textField("description", 1000),
).ReadOnly("property_id")

// Contacts may be linked to a property through the body; the nested
// property route sets property_id itself.
var Contacts = NewTable("contacts",
	Field{Name: "property_id", Kind: KindRef},
	Field{Name: "name", Kind: KindText, Required: true, MaxLen: 200},
	Field{Name: "role", Kind: KindEnum, Enum: domain.ContactRoles},
	textField("company", 200),
	Field{Name: "phone", Kind: KindPhone},
	Field{Name: "email", Kind: KindEmail},
	notes(),
)

// LedgerBody strips the period columns from a ledger table for the upsert
// route, where month and year come from the path.
func LedgerBody(t *Table) *Table {
	return t.Omit("month", "year")
}
