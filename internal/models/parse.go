package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
)

// DateLayout is the wire format for ledger dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &apperrors.ErrInvalidDate{Value: s}
	}
	return t.UTC(), nil
}

// ParseDecimal parses a monetary string, reporting the field it belongs to on
// failure.
func ParseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &apperrors.ErrInvalidDecimal{Field: field, Value: s}
	}
	return d, nil
}
