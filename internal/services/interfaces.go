package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alphavelocity/moneyclip/internal/models"
)

// FXService defines the interface for currency conversion operations
type FXService interface {
	// Convert converts amount from one currency to another using the best
	// available rate path as of date. Sign and scale of amount are preserved.
	Convert(ctx context.Context, amount decimal.Decimal, date time.Time, from, to string) (decimal.Decimal, error)
	// SaveRates ingests a batch of rates atomically.
	SaveRates(ctx context.Context, rates []*models.FXRate) error
	ListRates(ctx context.Context, limit int) ([]*models.FXRate, error)
}

// PortfolioService defines the interface for trade recording and realized
// capital gains reporting
type PortfolioService interface {
	// RealizedGains computes FIFO realized gains for every sell in the given
	// year, ordered by ticker then sell date.
	RealizedGains(ctx context.Context, year int) ([]*models.RealizedGain, error)
	RecordTrade(ctx context.Context, trade *models.Trade) error
	ListTrades(ctx context.Context, ticker string, limit int) ([]*models.Trade, error)
	CreateAsset(ctx context.Context, asset *models.Asset) error
	ListAssets(ctx context.Context) ([]*models.Asset, error)
}
