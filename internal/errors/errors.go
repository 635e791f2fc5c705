package errors

import (
	"fmt"
	"time"
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrInvalidRate reports a stored FX rate that is non-positive or unparsable.
type ErrInvalidRate struct {
	Base  string
	Quote string
	Date  time.Time
	Value string
}

func (e *ErrInvalidRate) Error() string {
	return fmt.Sprintf("invalid FX rate %q for %s/%s on or before %s",
		e.Value, e.Base, e.Quote, e.Date.Format("2006-01-02"))
}

// ErrNotConvertible reports that no rate path connects two currencies as of a date.
type ErrNotConvertible struct {
	From string
	To   string
	Date time.Time
}

func (e *ErrNotConvertible) Error() string {
	return fmt.Sprintf("no FX rate path from %s to %s on or before %s",
		e.From, e.To, e.Date.Format("2006-01-02"))
}

// ErrInvalidDecimal reports a malformed monetary string.
type ErrInvalidDecimal struct {
	Field string
	Value string
}

func (e *ErrInvalidDecimal) Error() string {
	return fmt.Sprintf("invalid decimal %q for %s", e.Value, e.Field)
}

// ErrInvalidDate reports a date string that is not YYYY-MM-DD.
type ErrInvalidDate struct {
	Value string
}

func (e *ErrInvalidDate) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Value)
}

// ErrNoEligibleLots reports a sell with no purchase lot dated on or before it.
type ErrNoEligibleLots struct {
	Ticker   string
	SellDate time.Time
}

func (e *ErrNoEligibleLots) Error() string {
	return fmt.Sprintf("no purchase lots for %s on or before %s",
		e.Ticker, e.SellDate.Format("2006-01-02"))
}

// ErrInsufficientLots reports a sell larger than the quantity available in
// eligible lots. Distinct from ErrNoEligibleLots: that one means a missing
// purchase record, this one means over-selling.
type ErrInsufficientLots struct {
	Ticker   string
	SellDate time.Time
	Short    string
}

func (e *ErrInsufficientLots) Error() string {
	return fmt.Sprintf("insufficient purchase lots for %s on %s: %s unfilled",
		e.Ticker, e.SellDate.Format("2006-01-02"), e.Short)
}

// ErrUnknownTradeSide reports a trade row whose side is neither buy nor sell.
type ErrUnknownTradeSide struct {
	Side string
}

func (e *ErrUnknownTradeSide) Error() string {
	return fmt.Sprintf("unknown trade side %q", e.Side)
}
