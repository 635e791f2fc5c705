package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
)

func rate(date time.Time, base, quote, value string) *models.FXRate {
	return &models.FXRate{
		Date:   date,
		Base:   base,
		Quote:  quote,
		Rate:   decimal.RequireFromString(value),
		Source: models.FXSourceManual,
	}
}

func TestSaveBatchNormalizesAndValidates(t *testing.T) {
	repo := NewFXRateRepository(newTestDB(t))
	ctx := context.Background()
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.SaveBatch(ctx, []*models.FXRate{rate(date, " usd ", "eur", "0.8")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rates, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(rates))
	}
	if rates[0].Base != "USD" || rates[0].Quote != "EUR" {
		t.Errorf("expected normalized USD/EUR, got %s/%s", rates[0].Base, rates[0].Quote)
	}

	err = repo.SaveBatch(ctx, []*models.FXRate{rate(date, "USD", "JPY", "-1")})
	var invalidRate *apperrors.ErrInvalidRate
	if !errors.As(err, &invalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
}

func TestLatestOnOrBeforePicksPerPairLatest(t *testing.T) {
	repo := NewFXRateRepository(newTestDB(t))
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC) }
	err := repo.SaveBatch(ctx, []*models.FXRate{
		rate(day(1), "USD", "EUR", "0.7"),
		rate(day(5), "USD", "EUR", "0.8"),
		rate(day(20), "USD", "EUR", "0.9"),
		rate(day(5), "USD", "JPY", "150"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rates, err := repo.LatestOnOrBefore(ctx, day(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(rates))
	}

	byPair := make(map[string]decimal.Decimal)
	for _, r := range rates {
		byPair[r.Base+"/"+r.Quote] = r.Rate
	}
	if !byPair["USD/EUR"].Equal(decimal.RequireFromString("0.8")) {
		t.Errorf("expected USD/EUR 0.8 as of day 10, got %s", byPair["USD/EUR"])
	}
	if !byPair["USD/JPY"].Equal(decimal.RequireFromString("150")) {
		t.Errorf("expected USD/JPY 150, got %s", byPair["USD/JPY"])
	}
}

func TestLatestOnOrBeforeBreaksDateTiesByInsertion(t *testing.T) {
	repo := NewFXRateRepository(newTestDB(t))
	ctx := context.Background()
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.SaveBatch(ctx, []*models.FXRate{rate(date, "USD", "EUR", "0.8")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveBatch(ctx, []*models.FXRate{rate(date, "USD", "EUR", "0.85")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rates, err := repo.LatestOnOrBefore(ctx, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(rates))
	}
	if !rates[0].Rate.Equal(decimal.RequireFromString("0.85")) {
		t.Errorf("expected later insertion 0.85 to win, got %s", rates[0].Rate)
	}
}

func TestLatestOnOrBeforeRejectsUnparsableRate(t *testing.T) {
	database := newTestDB(t)
	repo := NewFXRateRepository(database)
	ctx := context.Background()
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	// sqlite's loose typing lets a legacy import store a non-decimal rate.
	err := database.Exec(
		"INSERT INTO fx_rates (date, base, quote, rate, source, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		date, "USD", "EUR", "not-a-number", models.FXSourceManual, time.Now(),
	).Error
	if err != nil {
		t.Fatalf("failed to insert unparsable rate: %v", err)
	}

	_, err = repo.LatestOnOrBefore(ctx, date)
	var invalidRate *apperrors.ErrInvalidRate
	if !errors.As(err, &invalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if invalidRate.Value != "not-a-number" {
		t.Errorf("expected offending value in error, got %q", invalidRate.Value)
	}
	if invalidRate.Base != "USD" || invalidRate.Quote != "EUR" {
		t.Errorf("expected pair USD/EUR in error, got %s/%s", invalidRate.Base, invalidRate.Quote)
	}
}

func TestGenerationAdvancesOncePerBatch(t *testing.T) {
	repo := NewFXRateRepository(newTestDB(t))
	ctx := context.Background()
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	before, err := repo.Generation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = repo.SaveBatch(ctx, []*models.FXRate{
		rate(date, "USD", "EUR", "0.8"),
		rate(date, "USD", "JPY", "150"),
		rate(date, "USD", "GBP", "0.75"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, err := repo.Generation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after == before {
		t.Fatal("expected generation to advance after a write")
	}
	if got := after.Writes - before.Writes; got != 1 {
		t.Errorf("expected exactly one bump per batch, got %d", got)
	}

	// Reads leave the generation alone.
	if _, err := repo.LatestOnOrBefore(ctx, date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := repo.Generation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != after {
		t.Error("expected generation unchanged by reads")
	}
}
