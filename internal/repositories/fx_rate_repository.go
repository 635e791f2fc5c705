package repositories

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alphavelocity/moneyclip/internal/db"
	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
)

type fxRateRepository struct {
	db     *db.DB
	writes atomic.Int64
}

// NewFXRateRepository creates a new FX rate repository
func NewFXRateRepository(database *db.DB) FXRateRepository {
	return &fxRateRepository{db: database}
}

func (r *fxRateRepository) SaveBatch(ctx context.Context, rates []*models.FXRate) error {
	if len(rates) == 0 {
		return nil
	}

	for _, rate := range rates {
		if rate == nil {
			return fmt.Errorf("nil rate in batch")
		}
		rate.Normalize()
		if err := rate.Validate(); err != nil {
			return err
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rate := range rates {
			if err := tx.Create(rate).Error; err != nil {
				return fmt.Errorf("failed to create rate: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save rate batch: %w", err)
	}

	// One bump per committed batch, not one per row.
	r.writes.Add(1)
	return nil
}

// fxRateRow scans the rate column as raw text, so a value that is not a valid
// decimal surfaces as a typed rate error instead of a driver scan failure.
type fxRateRow struct {
	ID        uint
	Date      time.Time
	Base      string
	Quote     string
	Rate      string
	Source    string
	CreatedAt time.Time
}

func (r *fxRateRepository) LatestOnOrBefore(ctx context.Context, asOf time.Time) ([]*models.FXRate, error) {
	query := `
		SELECT id, date, base, quote, rate, source, created_at FROM (
			SELECT id, date, base, quote, rate, source, created_at,
			       ROW_NUMBER() OVER (PARTITION BY base, quote ORDER BY date DESC, id DESC) AS rn
			FROM fx_rates
			WHERE date <= ?
		) ranked
		WHERE rn = 1`

	var rows []fxRateRow
	if err := r.db.WithContext(ctx).Raw(query, asOf).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load rates as of %s: %w", asOf.Format(models.DateLayout), err)
	}

	rates := make([]*models.FXRate, 0, len(rows))
	for _, row := range rows {
		value, err := decimal.NewFromString(row.Rate)
		if err != nil {
			return nil, &apperrors.ErrInvalidRate{Base: row.Base, Quote: row.Quote, Date: asOf, Value: row.Rate}
		}
		rates = append(rates, &models.FXRate{
			ID:        row.ID,
			Date:      row.Date,
			Base:      row.Base,
			Quote:     row.Quote,
			Rate:      value,
			Source:    row.Source,
			CreatedAt: row.CreatedAt,
		})
	}
	return rates, nil
}

func (r *fxRateRepository) List(ctx context.Context, limit int) ([]*models.FXRate, error) {
	query := r.db.WithContext(ctx).Order("date DESC, base, quote")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rates []*models.FXRate
	if err := query.Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, nil
}

func (r *fxRateRepository) Generation(ctx context.Context) (Generation, error) {
	gen := Generation{Writes: r.writes.Load()}
	if r.db.IsSQLite() {
		// data_version moves when another connection writes the same file, so
		// external writers invalidate derived caches too.
		var version int64
		if err := r.db.WithContext(ctx).Raw("PRAGMA data_version").Scan(&version).Error; err != nil {
			return Generation{}, fmt.Errorf("failed to read data_version: %w", err)
		}
		gen.DataVersion = version
	}
	return gen, nil
}
