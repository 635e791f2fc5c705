package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func lot(date time.Time, qty, price, fees string) *models.Lot {
	q := decimal.RequireFromString(qty)
	return &models.Lot{
		Date:      date,
		Quantity:  q,
		Remaining: q,
		Price:     decimal.RequireFromString(price),
		Fees:      decimal.RequireFromString(fees),
	}
}

func sellEvent(date time.Time, qty, price, fees string) *models.SellEvent {
	return &models.SellEvent{
		Date:     date,
		Quantity: decimal.RequireFromString(qty),
		Price:    decimal.RequireFromString(price),
		Fees:     decimal.RequireFromString(fees),
	}
}

func TestMatchSellFIFO(t *testing.T) {
	lots := []*models.Lot{
		lot(day(2020, 1, 1), "100", "10", "5"),
		lot(day(2021, 6, 1), "50", "15", "2"),
	}

	gain, err := matchSell("VTI", lots, sellEvent(day(2025, 1, 10), "80", "20", "4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("792"); !gain.Equal(want) {
		t.Errorf("first sell: expected gain %s, got %s", want, gain)
	}
	if want := decimal.RequireFromString("20"); !lots[0].Remaining.Equal(want) {
		t.Errorf("first lot: expected remaining %s, got %s", want, lots[0].Remaining)
	}

	gain, err = matchSell("VTI", lots, sellEvent(day(2025, 6, 15), "50", "25", "5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("592.8"); !gain.Equal(want) {
		t.Errorf("second sell: expected gain %s, got %s", want, gain)
	}
	if !lots[0].Remaining.IsZero() {
		t.Errorf("first lot should be exhausted, remaining %s", lots[0].Remaining)
	}
	if want := decimal.RequireFromString("20"); !lots[1].Remaining.Equal(want) {
		t.Errorf("second lot: expected remaining %s, got %s", want, lots[1].Remaining)
	}
}

func TestMatchSellBuyFeeProratedByOriginalQuantity(t *testing.T) {
	// Two partial sells against one lot: each fee share is taken against the
	// original quantity, so the shares add up to the full fee.
	lots := []*models.Lot{lot(day(2020, 1, 1), "100", "10", "10")}

	first, err := matchSell("VTI", lots, sellEvent(day(2021, 1, 1), "80", "10", "0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No price move: the loss is exactly the buy fee share, 10 * 80/100.
	if want := decimal.RequireFromString("-8"); !first.Equal(want) {
		t.Errorf("expected gain %s, got %s", want, first)
	}

	second, err := matchSell("VTI", lots, sellEvent(day(2021, 2, 1), "20", "10", "0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("-2"); !second.Equal(want) {
		t.Errorf("expected gain %s, got %s", want, second)
	}
}

func TestMatchSellIgnoresLotsAfterSellDate(t *testing.T) {
	lots := []*models.Lot{
		lot(day(2024, 1, 1), "10", "10", "0"),
		lot(day(2025, 3, 1), "100", "5", "0"),
	}

	_, err := matchSell("VTI", lots, sellEvent(day(2025, 1, 10), "30", "20", "0"))
	var insufficient *apperrors.ErrInsufficientLots
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected ErrInsufficientLots, got %v", err)
	}
	if want := "20"; insufficient.Short != want {
		t.Errorf("expected %s unfilled, got %s", want, insufficient.Short)
	}
	if !lots[1].Remaining.Equal(decimal.RequireFromString("100")) {
		t.Errorf("later lot must stay untouched, remaining %s", lots[1].Remaining)
	}
}

func TestMatchSellNoEligibleLots(t *testing.T) {
	lots := []*models.Lot{lot(day(2025, 3, 1), "100", "5", "0")}

	_, err := matchSell("VTI", lots, sellEvent(day(2025, 1, 10), "30", "20", "0"))
	var noLots *apperrors.ErrNoEligibleLots
	if !errors.As(err, &noLots) {
		t.Fatalf("expected ErrNoEligibleLots, got %v", err)
	}
	if noLots.Ticker != "VTI" {
		t.Errorf("expected ticker VTI in error, got %q", noLots.Ticker)
	}
}

func TestMatchSellZeroQuantity(t *testing.T) {
	lots := []*models.Lot{lot(day(2020, 1, 1), "100", "10", "5")}

	gain, err := matchSell("VTI", lots, sellEvent(day(2025, 1, 10), "0", "20", "4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gain.IsZero() {
		t.Errorf("expected zero gain, got %s", gain)
	}
	if !lots[0].Remaining.Equal(decimal.RequireFromString("100")) {
		t.Errorf("lot must stay untouched, remaining %s", lots[0].Remaining)
	}
}
