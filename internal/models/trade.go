package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
)

// Trade sides
const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"
)

// Trade represents a single buy or sell of an asset. Quantity, Price and Fees
// are always treated as absolute values; Side carries the direction.
type Trade struct {
	ID        string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	Date      time.Time       `json:"date" gorm:"column:date;type:date;not null;index"`
	Ticker    string          `json:"ticker" gorm:"column:ticker;type:varchar(50);not null;index"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"column:quantity;type:decimal(30,18);not null"`
	Price     decimal.Decimal `json:"price" gorm:"column:price;type:decimal(30,18);not null"`
	Fees      decimal.Decimal `json:"fees" gorm:"column:fees;type:decimal(30,18);not null;default:0"`
	Side      string          `json:"side" gorm:"column:side;type:varchar(10);not null;index"`
	Note      *string         `json:"note" gorm:"column:note;type:text"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the Trade model
func (Trade) TableName() string {
	return "trades"
}

// Validate validates the trade data
func (t *Trade) Validate() error {
	if t.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if t.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	if t.Side != TradeSideBuy && t.Side != TradeSideSell {
		return &apperrors.ErrUnknownTradeSide{Side: t.Side}
	}
	if !t.Quantity.IsPositive() {
		return &apperrors.ErrValidation{Field: "quantity", Message: "must be positive"}
	}
	if t.Price.IsNegative() {
		return &apperrors.ErrValidation{Field: "price", Message: "must be non-negative"}
	}
	if t.Fees.IsNegative() {
		return &apperrors.ErrValidation{Field: "fees", Message: "must be non-negative"}
	}
	return nil
}

// Lot is a read-only matching view of one buy trade. Remaining only ever
// decreases, down to zero.
type Lot struct {
	Date      time.Time
	Quantity  decimal.Decimal // original purchased quantity
	Remaining decimal.Decimal
	Price     decimal.Decimal
	Fees      decimal.Decimal
}

// NewLot materializes a matching lot from a buy trade.
func NewLot(t *Trade) *Lot {
	qty := t.Quantity.Abs()
	return &Lot{
		Date:      t.Date,
		Quantity:  qty,
		Remaining: qty,
		Price:     t.Price.Abs(),
		Fees:      t.Fees.Abs(),
	}
}

// SellEvent is a read-only matching view of one sell trade.
type SellEvent struct {
	Date     time.Time
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Fees     decimal.Decimal
}

// NewSellEvent materializes a matching sell event from a sell trade.
func NewSellEvent(t *Trade) *SellEvent {
	return &SellEvent{
		Date:     t.Date,
		Quantity: t.Quantity.Abs(),
		Price:    t.Price.Abs(),
		Fees:     t.Fees.Abs(),
	}
}

// RealizedGain is one row of a realized capital gains report.
type RealizedGain struct {
	Ticker   string          `json:"ticker"`
	SellDate time.Time       `json:"sell_date"`
	Currency string          `json:"currency"`
	Gain     decimal.Decimal `json:"gain"`
}
