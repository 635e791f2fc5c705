package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alphavelocity/moneyclip/internal/db"
	"github.com/alphavelocity/moneyclip/internal/models"
)

type tradeRepository struct {
	db *db.DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(database *db.DB) TradeRepository {
	return &tradeRepository{db: database}
}

func (r *tradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	if trade == nil {
		return fmt.Errorf("nil trade")
	}

	// Stored magnitudes are unsigned; the side carries the direction.
	trade.Quantity = trade.Quantity.Abs()
	trade.Price = trade.Price.Abs()
	trade.Fees = trade.Fees.Abs()

	if err := trade.Validate(); err != nil {
		return err
	}
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(trade).Error; err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

func (r *tradeRepository) ListByTickerSide(ctx context.Context, ticker, side string) ([]*models.Trade, error) {
	var trades []*models.Trade
	// The trailing id keeps ties on (date, created_at) deterministic;
	// created_at precision is driver-dependent and can collide.
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND side = ?", ticker, side).
		Order("date ASC, created_at ASC, id ASC").
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s trades for %s: %w", side, ticker, err)
	}
	return trades, nil
}

func (r *tradeRepository) List(ctx context.Context, ticker string, limit int) ([]*models.Trade, error) {
	query := r.db.WithContext(ctx).Order("date DESC, created_at DESC, id DESC")
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var trades []*models.Trade
	if err := query.Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

func (r *tradeRepository) TickersWithSells(ctx context.Context, from, to time.Time) ([]string, error) {
	var tickers []string
	err := r.db.WithContext(ctx).
		Model(&models.Trade{}).
		Distinct("ticker").
		Where("side = ? AND date >= ? AND date < ?", models.TradeSideSell, from, to).
		Order("ticker").
		Pluck("ticker", &tickers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tickers with sells: %w", err)
	}
	return tickers, nil
}
