package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/miketud/realestateapp/internal/domain"
)

const (
	minYear = 1900
	maxYear = 2200
)

var (
	errBlank      = errors.New("blank")
	errOutOfRange = errors.New("must fit in a 64-bit integer")
)

// text returns v as a trimmed string. Numbers are rendered verbatim.
func text(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return "", errors.New("must be a string")
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

// nonBlank is text that treats "" as errBlank.
func nonBlank(v any) (string, error) {
	s, err := text(v)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errBlank
	}
	return s, nil
}

// blankAsNull maps errBlank to a NULL value.
func blankAsNull(v any, err error) (any, error) {
	if errors.Is(err, errBlank) {
		return nil, nil
	}
	return v, err
}

func coerceText(f Field, v any) (any, error) {
	s, err := nonBlank(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	if f.MaxLen > 0 && utf8.RuneCountInString(s) > f.MaxLen {
		return nil, fmt.Errorf("must be at most %d characters", f.MaxLen)
	}
	return s, nil
}

// ParseDecimal accepts "1250", "$1,250.00", "(45.10)" and "5.25%".
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "", "%", "").Replace(s)
	if s == "" {
		return decimal.Zero, errBlank
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("must be a number")
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func coerceDecimal(f Field, v any) (any, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch x := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(x.String())
		if err != nil {
			return nil, errors.New("must be a number")
		}
	case float64:
		d = decimal.NewFromFloat(x)
	case string:
		d, err = ParseDecimal(x)
		if err != nil {
			return blankAsNull(nil, err)
		}
	default:
		return nil, errors.New("must be a number")
	}

	if f.Scale > 0 {
		d = d.Round(f.Scale)
	}
	if f.Digits > 0 {
		limit := decimal.New(1, f.Digits-f.Scale)
		if d.Abs().GreaterThanOrEqual(limit) {
			return nil, fmt.Errorf("must be less than %s", limit.String())
		}
	}
	if f.Positive && !d.IsPositive() {
		return nil, errors.New("must be greater than zero")
	}
	if f.NonNeg && d.IsNegative() {
		return nil, errors.New("must not be negative")
	}
	return d, nil
}

// toInt converts whole numbers given as JSON numbers or strings.
func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		d, err := decimal.NewFromString(x.String())
		if err != nil || !d.IsInteger() {
			return 0, errors.New("must be a whole number")
		}
		if !d.BigInt().IsInt64() {
			return 0, errOutOfRange
		}
		return d.IntPart(), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, errors.New("must be a whole number")
		}
		if x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, errOutOfRange
		}
		return int64(x), nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return 0, errBlank
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return 0, errOutOfRange
		}
		if err != nil {
			return 0, errors.New("must be a whole number")
		}
		return n, nil
	default:
		return 0, errors.New("must be a whole number")
	}
}

func coerceInt(f Field, v any) (any, error) {
	n, err := toInt(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	if f.Min != nil && n < *f.Min {
		return nil, fmt.Errorf("must be at least %d", *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		return nil, fmt.Errorf("must be at most %d", *f.Max)
	}
	return int(n), nil
}

var dateLayouts = []string{domain.DateLayout, "01/02/2006", "1/2/2006", time.RFC3339}

// ParseDate accepts ISO dates, US-style MM/DD/YYYY and RFC 3339 timestamps.
func ParseDate(s string) (domain.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), nil
		}
	}
	return domain.Date{}, errors.New("must be a date (YYYY-MM-DD)")
}

func coerceDate(v any) (any, error) {
	s, err := nonBlank(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	if d.Year() < minYear || d.Year() > maxYear {
		return nil, fmt.Errorf("year must be between %d and %d", minYear, maxYear)
	}
	return d, nil
}

func coerceBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case json.Number:
		switch x.String() {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "y", "1", "on":
			return true, nil
		case "false", "no", "n", "0", "off":
			return false, nil
		case "":
			return nil, nil
		}
	}
	return nil, errors.New("must be true or false")
}

// NormalizeEnum lowercases and turns spaces and hyphens into underscores,
// so "Owner Occupied" and "owner-occupied" both read as owner_occupied.
func NormalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

func coerceEnum(f Field, v any) (any, error) {
	s, err := nonBlank(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	s = NormalizeEnum(s)
	if !slices.Contains(f.Enum, s) {
		return nil, fmt.Errorf("must be one of: %s", strings.Join(f.Enum, ", "))
	}
	return s, nil
}

// ParseMonth accepts 1-12, "03", "Mar" and "March".
func ParseMonth(v any) (int, error) {
	if s, ok := v.(string); ok {
		s = strings.ToLower(strings.TrimSpace(s))
		for m := time.January; m <= time.December; m++ {
			name := strings.ToLower(m.String())
			if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
				return int(m), nil
			}
		}
	}
	n, err := toInt(v)
	if err != nil {
		if errors.Is(err, errBlank) {
			return 0, err
		}
		return 0, errors.New("must be a month (1-12 or name)")
	}
	if n < 1 || n > 12 {
		return 0, errors.New("must be between 1 and 12")
	}
	return int(n), nil
}

func coerceMonth(v any) (any, error) {
	m, err := ParseMonth(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	return m, nil
}

func ParseYear(v any) (int, error) {
	n, err := toInt(v)
	if err != nil {
		if errors.Is(err, errBlank) {
			return 0, err
		}
		return 0, errors.New("must be a year")
	}
	if n < minYear || n > maxYear {
		return 0, fmt.Errorf("must be between %d and %d", minYear, maxYear)
	}
	return int(n), nil
}

func coerceYear(v any) (any, error) {
	y, err := ParseYear(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	return y, nil
}

// NormalizeZip returns "12345" or "12345-6789".
func NormalizeZip(s string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", errors.New("must be a 5 or 9 digit ZIP code")
		}
	}

	switch len(digits) {
	case 5:
		return digits, nil
	case 9:
		return digits[:5] + "-" + digits[5:], nil
	default:
		return "", errors.New("must be a 5 or 9 digit ZIP code")
	}
}

func coerceZip(v any) (any, error) {
	s, err := nonBlank(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	return NormalizeZip(s)
}

func coerceState(v any) (any, error) {
	s, err := nonBlank(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	code, ok := StateCode(s)
	if !ok {
		return nil, errors.New("must be a US state code or name")
	}
	return code, nil
}

func coerceEmail(v any) (any, error) {
	s, err := nonBlank(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@")+1:], ".") {
		return nil, errors.New("must be an email address")
	}
	return strings.ToLower(s), nil
}

// coercePhone keeps the caller's formatting but requires 7 to 15 digits.
func coercePhone(v any) (any, error) {
	s, err := nonBlank(v)
	if err != nil {
		return blankAsNull(nil, err)
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(" ()-+.x", r):
		default:
			return nil, errors.New("must be a phone number")
		}
	}
	if digits < 7 || digits > 15 {
		return nil, errors.New("must be a phone number")
	}
	return s, nil
}

func coerceRef(v any) (any, error) {
	n, err := toInt(v)
	if err != nil {
		if errors.Is(err, errBlank) {
			return nil, nil
		}
		return nil, errors.New("must be a record id")
	}
	if n <= 0 {
		return nil, errors.New("must be a record id")
	}
	return n, nil
}
