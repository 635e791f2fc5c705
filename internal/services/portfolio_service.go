package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
	"github.com/alphavelocity/moneyclip/internal/repositories"
)

type portfolioService struct {
	trades repositories.TradeRepository
	assets repositories.AssetRepository
	logger *zap.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(trades repositories.TradeRepository, assets repositories.AssetRepository, logger *zap.Logger) PortfolioService {
	return &portfolioService{
		trades: trades,
		assets: assets,
		logger: logger,
	}
}

func (s *portfolioService) RecordTrade(ctx context.Context, trade *models.Trade) error {
	return s.trades.Create(ctx, trade)
}

func (s *portfolioService) ListTrades(ctx context.Context, ticker string, limit int) ([]*models.Trade, error) {
	return s.trades.List(ctx, ticker, limit)
}

func (s *portfolioService) CreateAsset(ctx context.Context, asset *models.Asset) error {
	return s.assets.Create(ctx, asset)
}

func (s *portfolioService) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	return s.assets.List(ctx)
}

// RealizedGains computes FIFO realized gains for every sell in year. Sells from
// earlier years are replayed first, gains discarded, so the year's matching
// starts from the true remaining basis rather than the original purchased
// quantities.
func (s *portfolioService) RealizedGains(ctx context.Context, year int) ([]*models.RealizedGain, error) {
	if year <= 0 {
		return nil, &apperrors.ErrValidation{Field: "year", Message: "must be positive"}
	}
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	tickers, err := s.trades.TickersWithSells(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]*models.RealizedGain, 0)
	for _, ticker := range tickers {
		asset, err := s.assets.GetByTicker(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve currency for %s: %w", ticker, err)
		}

		buys, err := s.trades.ListByTickerSide(ctx, ticker, models.TradeSideBuy)
		if err != nil {
			return nil, err
		}
		sellTrades, err := s.trades.ListByTickerSide(ctx, ticker, models.TradeSideSell)
		if err != nil {
			return nil, err
		}

		lots := make([]*models.Lot, 0, len(buys))
		for _, b := range buys {
			lots = append(lots, models.NewLot(b))
		}

		sells := make([]*models.SellEvent, 0, len(sellTrades))
		for _, t := range sellTrades {
			sells = append(sells, models.NewSellEvent(t))
		}

		if len(lots) == 0 {
			return nil, &apperrors.ErrNoEligibleLots{
				Ticker:   ticker,
				SellDate: firstSellInRange(sells, start, end),
			}
		}

		for _, sell := range sells {
			if sell.Date.Before(start) {
				// Carryover pass: consumption counts, the gain does not.
				if _, err := matchSell(ticker, lots, sell); err != nil {
					return nil, err
				}
				continue
			}
			if !sell.Date.Before(end) {
				continue
			}

			gain, err := matchSell(ticker, lots, sell)
			if err != nil {
				return nil, err
			}
			rows = append(rows, &models.RealizedGain{
				Ticker:   ticker,
				SellDate: sell.Date,
				Currency: asset.Currency,
				Gain:     gain,
			})
		}
	}

	s.logger.Debug("computed realized gains",
		zap.Int("year", year),
		zap.Int("tickers", len(tickers)),
		zap.Int("rows", len(rows)))
	return rows, nil
}

func firstSellInRange(sells []*models.SellEvent, start, end time.Time) time.Time {
	for _, sell := range sells {
		if !sell.Date.Before(start) && sell.Date.Before(end) {
			return sell.Date
		}
	}
	return start
}
