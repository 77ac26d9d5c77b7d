// Package schema validates request bodies and coerces their values into the
// column types of each table.
//
// Values are accepted the way an editable table cell produces them: numbers
// may arrive as strings with currency symbols and thousands separators,
// months as names, booleans as yes/no, and an empty string clears a column.
package schema
