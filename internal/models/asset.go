package models

import (
	"time"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
)

// Asset represents a tradeable instrument and the currency it is quoted in.
type Asset struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Ticker    string    `json:"ticker" gorm:"column:ticker;type:varchar(50);not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Currency  string    `json:"currency" gorm:"column:currency;type:varchar(10);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}

// Validate validates the asset data
func (a *Asset) Validate() error {
	if a.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	if a.Currency == "" {
		return &apperrors.ErrValidation{Field: "currency", Message: "is required"}
	}
	return nil
}
