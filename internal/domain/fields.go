package domain

// Fields is a validated, coerced set of column values for a write.
// Keys are column names; a nil value writes NULL.
type Fields map[string]any

// Has reports whether the write touches column.
func (f Fields) Has(column string) bool {
	_, ok := f[column]
	return ok
}

// String returns the column as a string if it is set to a non-null string.
func (f Fields) String(column string) (string, bool) {
	s, ok := f[column].(string)
	return s, ok
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
