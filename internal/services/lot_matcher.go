package services

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
)

// matchSell consumes purchase lots against one sell event in FIFO order,
// mutating lot remaining quantities in place, and returns the realized gain.
//
// Only lots dated on or before the sell are eligible. Fees are prorated by
// quantity: the buy-side share against the lot's original quantity, the
// sell-side share against the full sell quantity, so each share is allocated
// exactly once across the lots the sell touches. Proration by quantity is a
// convention, not a tax rule; it lives here so it can be swapped in one place.
func matchSell(ticker string, lots []*models.Lot, sell *models.SellEvent) (decimal.Decimal, error) {
	realized := decimal.Zero
	if sell.Quantity.IsZero() {
		return realized, nil
	}

	remaining := sell.Quantity
	eligible := false
	for _, lot := range lots {
		if lot.Date.After(sell.Date) {
			continue
		}
		eligible = true
		if !lot.Remaining.IsPositive() {
			continue
		}

		useQty := decimal.Min(remaining, lot.Remaining)
		buyFeeShare := lot.Fees.Mul(useQty).Div(lot.Quantity)
		sellFeeShare := sell.Fees.Mul(useQty).Div(sell.Quantity)

		proceeds := sell.Price.Mul(useQty).Sub(sellFeeShare)
		cost := lot.Price.Mul(useQty).Add(buyFeeShare)
		realized = realized.Add(proceeds.Sub(cost))

		lot.Remaining = lot.Remaining.Sub(useQty)
		remaining = remaining.Sub(useQty)
		if remaining.IsZero() {
			break
		}
	}

	if remaining.IsPositive() {
		if !eligible {
			return decimal.Zero, &apperrors.ErrNoEligibleLots{Ticker: ticker, SellDate: sell.Date}
		}
		return decimal.Zero, &apperrors.ErrInsufficientLots{
			Ticker:   ticker,
			SellDate: sell.Date,
			Short:    remaining.String(),
		}
	}
	return realized, nil
}
