package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
)

// FXRate represents one stored exchange rate: 1 unit of Base equals Rate units
// of Quote on Date.
type FXRate struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Date      time.Time       `json:"date" gorm:"column:date;type:date;not null;index:idx_fx_rates_pair_date,priority:3"`
	Base      string          `json:"base" gorm:"column:base;type:varchar(10);not null;index:idx_fx_rates_pair_date,priority:1"`
	Quote     string          `json:"quote" gorm:"column:quote;type:varchar(10);not null;index:idx_fx_rates_pair_date,priority:2"`
	Rate      decimal.Decimal `json:"rate" gorm:"column:rate;type:decimal(30,18);not null"`
	Source    string          `json:"source" gorm:"column:source;type:varchar(50)"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the FXRate model
func (FXRate) TableName() string {
	return "fx_rates"
}

// Common FX sources
const (
	FXSourceManual = "manual"
	FXSourceECB    = "ecb"
)

// NormalizeCurrency trims and upper-cases a currency code. Currency codes are
// never compared case-sensitively anywhere in the engine.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Normalize canonicalizes the currency codes in place.
func (fx *FXRate) Normalize() {
	fx.Base = NormalizeCurrency(fx.Base)
	fx.Quote = NormalizeCurrency(fx.Quote)
}

// Validate validates the FX rate data
func (fx *FXRate) Validate() error {
	if fx.Base == "" {
		return &apperrors.ErrValidation{Field: "base", Message: "is required"}
	}
	if fx.Quote == "" {
		return &apperrors.ErrValidation{Field: "quote", Message: "is required"}
	}
	if fx.Base == fx.Quote {
		return &apperrors.ErrValidation{Field: "quote", Message: "must differ from base"}
	}
	if fx.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if !fx.Rate.IsPositive() {
		return &apperrors.ErrInvalidRate{Base: fx.Base, Quote: fx.Quote, Date: fx.Date, Value: fx.Rate.String()}
	}
	return nil
}
