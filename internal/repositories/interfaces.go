package repositories

import (
	"context"
	"time"

	"github.com/alphavelocity/moneyclip/internal/models"
)

// Generation is the mutation-generation stamp for the rate table. DataVersion
// tracks schema-level changes made by other connections to the same database
// file; Writes counts committed rate batches made through this process. Derived
// caches compare the whole value and rebuild when it moves.
type Generation struct {
	DataVersion int64
	Writes      int64
}

// FXRateRepository defines the interface for FX rate data operations
type FXRateRepository interface {
	// SaveBatch persists a batch of rates inside a single transaction, so the
	// mutation generation advances exactly once per batch.
	SaveBatch(ctx context.Context, rates []*models.FXRate) error
	// LatestOnOrBefore returns, for every distinct (base, quote) pair, the rate
	// row with the latest date on or before asOf. Ties on date are broken by
	// latest insertion.
	LatestOnOrBefore(ctx context.Context, asOf time.Time) ([]*models.FXRate, error)
	List(ctx context.Context, limit int) ([]*models.FXRate, error)
	Generation(ctx context.Context) (Generation, error)
}

// TradeRepository defines the interface for trade data operations
type TradeRepository interface {
	Create(ctx context.Context, trade *models.Trade) error
	// ListByTickerSide returns all trades of one side for a ticker, ascending
	// by date then creation time, with id as a deterministic tie-break.
	ListByTickerSide(ctx context.Context, ticker, side string) ([]*models.Trade, error)
	List(ctx context.Context, ticker string, limit int) ([]*models.Trade, error)
	// TickersWithSells returns the distinct tickers with at least one sell in
	// [from, to), sorted.
	TickersWithSells(ctx context.Context, from, to time.Time) ([]string, error)
}

// AssetRepository defines the interface for asset data operations
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByTicker(ctx context.Context, ticker string) (*models.Asset, error)
	List(ctx context.Context) ([]*models.Asset, error)
}
