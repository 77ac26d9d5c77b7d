package schema

import (
	"fmt"
	"slices"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/miketud/realestateapp/internal/domain"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
)

type Kind int

const (
	KindText Kind = iota
	KindDecimal
	KindInt
	KindDate
	KindBool
	KindEnum
	KindMonth
	KindYear
	KindZip
	KindState
	KindEmail
	KindPhone
	KindRef
)

// Field describes one writable column.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	MaxLen   int      // text only; zero means unlimited
	Enum     []string // KindEnum values
	Digits   int32    // KindDecimal precision; zero means unbounded
	Scale    int32    // KindDecimal rounding places
	Min, Max *int64   // KindInt bounds
	Positive bool     // KindDecimal: must be > 0
	NonNeg   bool     // KindDecimal: must be >= 0
}

type Mode int

const (
	// Create rejects unknown fields and requires every Required field.
	Create Mode = iota
	// Patch accepts any non-empty subset of the fields.
	Patch
)

// systemColumns are maintained by the database and never writable.
var systemColumns = []string{"id", "created_at", "updated_at"}

// Table is the writable field catalogue of one table.
type Table struct {
	Name     string
	fields   map[string]Field
	readOnly map[string]struct{}
}

func NewTable(name string, fields ...Field) *Table {
	t := &Table{
		Name:     name,
		fields:   make(map[string]Field, len(fields)),
		readOnly: make(map[string]struct{}),
	}
	for _, f := range fields {
		t.fields[f.Name] = f
	}
	for _, c := range systemColumns {
		t.readOnly[c] = struct{}{}
	}
	return t
}

// ReadOnly marks columns that exist but are owned by the route, returning t.
func (t *Table) ReadOnly(names ...string) *Table {
	for _, n := range names {
		t.readOnly[n] = struct{}{}
	}
	return t
}

// Omit returns a copy of t where names become read-only.
func (t *Table) Omit(names ...string) *Table {
	out := &Table{
		Name:     t.Name,
		fields:   make(map[string]Field, len(t.fields)),
		readOnly: make(map[string]struct{}, len(t.readOnly)+len(names)),
	}
	for k, v := range t.fields {
		if !slices.Contains(names, k) {
			out.fields[k] = v
		}
	}
	for k := range t.readOnly {
		out.readOnly[k] = struct{}{}
	}
	return out.ReadOnly(names...)
}

// Field returns the named field definition.
func (t *Table) Field(name string) (Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// FieldNames returns the writable columns in sorted order.
func (t *Table) FieldNames() []string {
	names := make([]string, 0, len(t.fields))
	for n := range t.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var bodyAPI = jsoniter.Config{UseNumber: true}.Froze()

// Decode parses a JSON object body keeping numbers exact.
func Decode(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := bodyAPI.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.ValidationError("request body must be a JSON object")
	}
	if raw == nil {
		return nil, apperrors.ValidationError("request body must be a JSON object")
	}
	return raw, nil
}

// Parse decodes body and coerces it for mode.
func (t *Table) Parse(body []byte, mode Mode) (domain.Fields, error) {
	raw, err := Decode(body)
	if err != nil {
		return nil, err
	}
	return t.Coerce(raw, mode)
}

// Coerce validates raw against the table and converts every value to its
// column type. Errors are validation errors naming the first bad field in
// alphabetical order.
func (t *Table) Coerce(raw map[string]any, mode Mode) (domain.Fields, error) {
	if mode == Patch && len(raw) == 0 {
		return nil, apperrors.ValidationError("no fields to update")
	}

	names := make([]string, 0, len(raw))
	for n := range raw {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make(domain.Fields, len(raw))
	for _, name := range names {
		if _, ok := t.readOnly[name]; ok {
			return nil, apperrors.InvalidField(name, "field is read-only")
		}
		f, ok := t.fields[name]
		if !ok {
			return nil, apperrors.InvalidField(name, "unknown field")
		}

		v, err := coerce(f, raw[name])
		if err != nil {
			return nil, apperrors.InvalidField(name, err.Error())
		}
		if v == nil && f.Required {
			return nil, apperrors.InvalidField(name, "is required")
		}
		out[name] = v
	}

	if mode == Create {
		for _, name := range t.FieldNames() {
			if f := t.fields[name]; f.Required && !out.Has(name) {
				return nil, apperrors.InvalidField(name, "is required")
			}
		}
	}

	return out, nil
}

func coerce(f Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch f.Kind {
	case KindText:
		return coerceText(f, v)
	case KindDecimal:
		return coerceDecimal(f, v)
	case KindInt:
		return coerceInt(f, v)
	case KindDate:
		return coerceDate(v)
	case KindBool:
		return coerceBool(v)
	case KindEnum:
		return coerceEnum(f, v)
	case KindMonth:
		return coerceMonth(v)
	case KindYear:
		return coerceYear(v)
	case KindZip:
		return coerceZip(v)
	case KindState:
		return coerceState(v)
	case KindEmail:
		return coerceEmail(v)
	case KindPhone:
		return coercePhone(v)
	case KindRef:
		return coerceRef(v)
	default:
		return nil, fmt.Errorf("unsupported field kind %d", f.Kind)
	}
}

// Complete returns fields extended with every writable column it lacks,
// set to NULL (false for booleans). It turns a create-mode body into a full
// replacement.
func (t *Table) Complete(fields domain.Fields) domain.Fields {
	out := fields.Clone()
	for name, f := range t.fields {
		if out.Has(name) {
			continue
		}
		if f.Kind == KindBool {
			out[name] = false
		} else {
			out[name] = nil
		}
	}
	return out
}
