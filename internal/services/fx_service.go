package services

import (
	"container/heap"
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
	"github.com/alphavelocity/moneyclip/internal/repositories"
)

type fxService struct {
	rates  repositories.FXRateRepository
	cache  *graphCache
	logger *zap.Logger
}

// NewFXService creates a new FX conversion service
func NewFXService(rates repositories.FXRateRepository, logger *zap.Logger) FXService {
	return &fxService{
		rates:  rates,
		cache:  newGraphCache(),
		logger: logger,
	}
}

func (s *fxService) SaveRates(ctx context.Context, rates []*models.FXRate) error {
	// The cache invalidates itself through the generation stamp; no explicit
	// invalidation call needed here.
	return s.rates.SaveBatch(ctx, rates)
}

func (s *fxService) ListRates(ctx context.Context, limit int) ([]*models.FXRate, error) {
	return s.rates.List(ctx, limit)
}

// Convert finds the conversion path between from and to that maximizes the
// resulting amount, using the most recent rates on or before date. Direct
// edges, reciprocals and hub routes all compete; a roundabout route wins
// whenever its cumulative rate beats the direct one.
func (s *fxService) Convert(ctx context.Context, amount decimal.Decimal, date time.Time, from, to string) (decimal.Decimal, error) {
	from = models.NormalizeCurrency(from)
	to = models.NormalizeCurrency(to)

	if from == to {
		return amount, nil
	}
	if amount.IsZero() {
		return amount, nil
	}

	asOf := truncateToDay(date)
	graph, err := s.graphFor(ctx, asOf)
	if err != nil {
		return decimal.Decimal{}, err
	}

	fromIdx, ok := graph.index[from]
	if !ok {
		return decimal.Decimal{}, &apperrors.ErrNotConvertible{From: from, To: to, Date: asOf}
	}
	toIdx, ok := graph.index[to]
	if !ok {
		return decimal.Decimal{}, &apperrors.ErrNotConvertible{From: from, To: to, Date: asOf}
	}

	// Dijkstra variant maximizing the product of edge rates: explore from the
	// highest partial amount, relax only on a strictly larger reachable amount.
	magnitude := amount.Abs()
	best := make([]decimal.Decimal, len(graph.adjacency))
	for i := range best {
		best[i] = decimal.Zero
	}
	best[fromIdx] = magnitude

	pq := &amountQueue{{amount: magnitude, node: fromIdx}}
	for pq.Len() > 0 {
		current := heap.Pop(pq).(amountNode)
		if current.amount.LessThan(best[current.node]) {
			continue
		}
		if current.node == toIdx {
			if amount.IsNegative() {
				return current.amount.Neg(), nil
			}
			return current.amount, nil
		}

		for _, edge := range graph.adjacency[current.node] {
			next := current.amount.Mul(edge.rate)
			if next.GreaterThan(best[edge.to]) {
				best[edge.to] = next
				heap.Push(pq, amountNode{amount: next, node: edge.to})
			}
		}
	}

	return decimal.Decimal{}, &apperrors.ErrNotConvertible{From: from, To: to, Date: asOf}
}

func (s *fxService) graphFor(ctx context.Context, asOf time.Time) (*rateGraph, error) {
	key := asOf.Format(models.DateLayout)

	gen, err := s.rates.Generation(ctx)
	if err != nil {
		return nil, err
	}
	if g := s.cache.get(gen, key); g != nil {
		return g, nil
	}

	rows, err := s.rates.LatestOnOrBefore(ctx, asOf)
	if err != nil {
		return nil, err
	}
	g, err := buildRateGraph(asOf, rows)
	if err != nil {
		return nil, err
	}

	// Stamp with the generation read before the row load. A write landing
	// during the build leaves the entry stale and costs one redundant
	// rebuild; stamping any later generation could mark pre-write rows as
	// current.
	s.cache.put(gen, key, g)
	s.logger.Debug("rebuilt FX graph",
		zap.String("as_of", key),
		zap.Int("currencies", len(g.index)))

	return g, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type amountNode struct {
	amount decimal.Decimal
	node   int
}

// amountQueue is a max-heap over partial conversion amounts.
type amountQueue []amountNode

func (q amountQueue) Len() int            { return len(q) }
func (q amountQueue) Less(i, j int) bool  { return q[i].amount.GreaterThan(q[j].amount) }
func (q amountQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *amountQueue) Push(x interface{}) { *q = append(*q, x.(amountNode)) }
func (q *amountQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
