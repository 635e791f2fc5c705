package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/alphavelocity/moneyclip/internal/repositories"
)

func TestGraphCacheGenerationMismatchInvalidates(t *testing.T) {
	cache := newGraphCache()
	genA := repositories.Generation{Writes: 1}
	genB := repositories.Generation{Writes: 2}

	g := &rateGraph{}
	cache.put(genA, "2025-08-01", g)
	if cache.get(genA, "2025-08-01") != g {
		t.Fatal("expected cache hit for matching generation")
	}
	if cache.get(genB, "2025-08-01") != nil {
		t.Fatal("expected miss after generation advanced")
	}

	// Storing under the new generation drops everything stamped with the old one.
	cache.put(genB, "2025-08-02", g)
	if cache.get(genB, "2025-08-01") != nil {
		t.Fatal("expected old date to be dropped with the stale generation")
	}
	if cache.len() != 1 {
		t.Fatalf("expected 1 cached date, got %d", cache.len())
	}
}

func TestGraphCacheEvictsLeastRecentDate(t *testing.T) {
	cache := newGraphCache()
	gen := repositories.Generation{Writes: 1}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxGraphCacheDates+1; i++ {
		key := base.AddDate(0, 0, i).Format("2006-01-02")
		cache.put(gen, key, &rateGraph{})
	}

	if cache.len() != maxGraphCacheDates {
		t.Fatalf("expected %d cached dates, got %d", maxGraphCacheDates, cache.len())
	}
	if cache.get(gen, "2025-01-01") != nil {
		t.Fatal("expected oldest date to be evicted")
	}
	if cache.get(gen, "2025-01-02") == nil {
		t.Fatal("expected second-oldest date to survive")
	}
}

func TestGraphCacheReinsertRefreshesRecency(t *testing.T) {
	cache := newGraphCache()
	gen := repositories.Generation{Writes: 1}

	for i := 0; i < maxGraphCacheDates; i++ {
		cache.put(gen, fmt.Sprintf("key-%02d", i), &rateGraph{})
	}
	// Re-store the oldest, then push one more: key-01 is now the eviction victim.
	cache.put(gen, "key-00", &rateGraph{})
	cache.put(gen, "extra", &rateGraph{})

	if cache.get(gen, "key-00") == nil {
		t.Fatal("expected re-stored date to survive eviction")
	}
	if cache.get(gen, "key-01") != nil {
		t.Fatal("expected least recently stored date to be evicted")
	}
}
