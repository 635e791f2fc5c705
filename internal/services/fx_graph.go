package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
)

type rateEdge struct {
	to   int
	rate decimal.Decimal
}

// rateGraph is an immutable snapshot of the rate table for one as-of date.
// Every stored base->quote rate contributes a forward arc and a synthesized
// reciprocal arc, so conversion works in either direction and through hubs.
type rateGraph struct {
	index     map[string]int
	adjacency [][]rateEdge
}

var one = decimal.NewFromInt(1)

// buildRateGraph builds the conversion graph from the per-pair latest rates as
// of asOf. Currencies get dense indices in first-seen order.
func buildRateGraph(asOf time.Time, rates []*models.FXRate) (*rateGraph, error) {
	g := &rateGraph{index: make(map[string]int)}

	for _, row := range rates {
		if !row.Rate.IsPositive() {
			return nil, &apperrors.ErrInvalidRate{
				Base:  row.Base,
				Quote: row.Quote,
				Date:  asOf,
				Value: row.Rate.String(),
			}
		}

		base := g.indexOf(models.NormalizeCurrency(row.Base))
		quote := g.indexOf(models.NormalizeCurrency(row.Quote))

		g.adjacency[base] = append(g.adjacency[base], rateEdge{to: quote, rate: row.Rate})
		g.adjacency[quote] = append(g.adjacency[quote], rateEdge{to: base, rate: one.Div(row.Rate)})
	}

	return g, nil
}

func (g *rateGraph) indexOf(currency string) int {
	if idx, ok := g.index[currency]; ok {
		return idx
	}
	idx := len(g.adjacency)
	g.index[currency] = idx
	g.adjacency = append(g.adjacency, nil)
	return idx
}
