package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cscheub/passivincome"
)

// scratchCacheFile points the cache file flag at a scratch location for the
// duration of the test.
func scratchCacheFile(t *testing.T) {
	t.Helper()
	saved := *cacheFile
	*cacheFile = filepath.Join(t.TempDir(), "cache.json")
	t.Cleanup(func() { *cacheFile = saved })
}

func TestValuationCachePersistsAcrossRuns(t *testing.T) {
	scratchCacheFile(t)

	defs := []passivincome.AssetDefinition{
		{ID: "acme", Type: passivincome.Stock, Currency: "EUR", CurrentPrice: 10},
	}
	txs := []passivincome.Transaction{
		{ID: "t1", AssetID: "acme", Type: passivincome.Buy, Quantity: passivincome.Q(2), Price: passivincome.M(8, "EUR")},
	}

	v := OpenValuation()
	if v.Cache() != nil {
		t.Fatal("valuation opened without a cache file is not empty")
	}
	v.Snapshot(txs, defs)
	if err := CloseValuation(v); err != nil {
		t.Fatal(err)
	}

	reopened := OpenValuation()
	c := reopened.Cache()
	if c == nil {
		t.Fatal("persisted cache was not restored on the next run")
	}
	if len(c.Positions) != 1 || c.Positions[0].AssetID != "acme" {
		t.Errorf("restored cache positions = %+v", c.Positions)
	}
}

func TestCloseValuationRemovesEmptyCache(t *testing.T) {
	scratchCacheFile(t)

	v := OpenValuation()
	v.Snapshot(nil, nil)
	if err := CloseValuation(v); err != nil {
		t.Fatal(err)
	}

	v = OpenValuation()
	v.Invalidate()
	if err := CloseValuation(v); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(*cacheFile); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cache file still present after invalidation, stat err = %v", err)
	}
}
