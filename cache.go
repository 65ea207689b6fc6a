package passivincome

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

// ErrCorruptCache flags a persisted cache whose structure cannot be trusted.
// Callers treat it exactly like a cache miss: recompute, never crash.
var ErrCorruptCache = errors.New("corrupt portfolio cache")

// DefaultMaxAge is how long a cached valuation may serve reads before market
// data is considered too stale, even when the fingerprint still matches.
const DefaultMaxAge = 24 * time.Hour

// Cache is a versioned snapshot of the aggregated portfolio: the positions,
// their totals, when they were computed, and the fingerprint of the inputs
// they were computed from.
//
// A cache is replaced wholesale on every recomputation and discarded on
// invalidation; it is never patched in place.
type Cache struct {
	Positions      []Position `json:"positions"`
	Totals         Totals     `json:"totals"`
	LastCalculated time.Time  `json:"lastCalculated"`
	InputHash      string     `json:"inputHash"`
}

// Valid reports whether the cache can serve reads for the given current
// fingerprint at 'now'. It is a pure predicate: a cache it rejects must not be
// read from, the caller triggers a recomputation instead.
func (c *Cache) Valid(fingerprint string, now time.Time, maxAge time.Duration) bool {
	if c == nil || c.Positions == nil {
		return false
	}
	if c.InputHash != fingerprint {
		return false
	}
	return now.Sub(c.LastCalculated) <= maxAge
}

// HashFunc computes the valuation fingerprint of the inputs.
type HashFunc func([]Transaction, []AssetDefinition) string

// Valuation owns the portfolio cache and decides when to recompute.
//
// The clock and the fingerprint function are plain fields so tests control
// time and hashing without patching globals. The cache has a single writer:
// only Snapshot replaces it, readers never mutate it.
type Valuation struct {
	Now    func() time.Time
	Hash   HashFunc
	MaxAge time.Duration

	cache *Cache
}

// NewValuation returns a valuation service with the real clock, the standard
// fingerprint and the default staleness limit.
func NewValuation() *Valuation {
	return &Valuation{Now: time.Now, Hash: Fingerprint, MaxAge: DefaultMaxAge}
}

// Snapshot returns the current positions and totals, recomputing them only
// when the cache is empty, stale, or fingerprints a different input set.
// Callers never see the fingerprinting details.
func (v *Valuation) Snapshot(txs []Transaction, defs []AssetDefinition) ([]Position, Totals) {
	fingerprint := v.Hash(txs, defs)
	if v.cache.Valid(fingerprint, v.Now(), v.MaxAge) {
		log.Printf("portfolio cache hit (%d positions)", len(v.cache.Positions))
		return v.cache.Positions, v.cache.Totals
	}

	log.Printf("portfolio cache miss, aggregating %d transactions over %d assets", len(txs), len(defs))
	positions := Positions(txs, defs)
	totals := ComputeTotals(positions)

	// Wholesale replacement: a cache is never patched in place.
	v.cache = &Cache{
		Positions:      positions,
		Totals:         totals,
		LastCalculated: v.Now(),
		InputHash:      fingerprint,
	}
	return positions, totals
}

// Invalidate discards the cache; the next Snapshot recomputes from scratch.
func (v *Valuation) Invalidate() { v.cache = nil }

// Cache exposes the current cache for persistence. Nil when empty or
// invalidated.
func (v *Valuation) Cache() *Cache { return v.cache }

// Restore adopts a cache loaded from persisted storage. A structurally
// broken cache is refused with ErrCorruptCache and the valuation stays empty.
func (v *Valuation) Restore(c *Cache) error {
	if c == nil || c.Positions == nil || c.InputHash == "" {
		return ErrCorruptCache
	}
	v.cache = c
	return nil
}

// EncodeCache persists the cache as a single JSON document.
func EncodeCache(w io.Writer, c *Cache) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(c)
}

// DecodeCache reads a persisted cache, checking its structural shape before
// trusting it: positions must be a JSON array and totals a JSON object.
// Anything else is reported as ErrCorruptCache, which callers treat as a
// cache miss.
func DecodeCache(r io.Reader) (*Cache, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading portfolio cache: %w", err)
	}

	var shape struct {
		Positions json.RawMessage `json:"positions"`
		Totals    json.RawMessage `json:"totals"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if !startsWith(shape.Positions, '[') {
		return nil, fmt.Errorf("%w: positions is not a sequence", ErrCorruptCache)
	}
	if !startsWith(shape.Totals, '{') {
		return nil, fmt.Errorf("%w: totals is not an object", ErrCorruptCache)
	}

	var c Cache
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	return &c, nil
}

func startsWith(raw json.RawMessage, b byte) bool {
	for _, r := range raw {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return r == b
		}
	}
	return false
}
