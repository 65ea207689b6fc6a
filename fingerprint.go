package passivincome

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"strings"
)

// This file computes the valuation fingerprint used as the portfolio cache key.
//
// Only fields that affect the valuation participate. Live prices deliberately
// do not: price movement is handled by the cache's age rule, otherwise every
// tick would force a full recompute.

// Fingerprint returns a stable fingerprint of the valuation inputs. It is
// deterministic and order-independent: records are canonicalized and sorted
// before hashing, so the same logical input always yields the same result.
//
// The result is two sub-fingerprints joined by ':' — transactions first,
// definitions second — so diagnostics can tell which side changed.
func Fingerprint(txs []Transaction, defs []AssetDefinition) string {
	return fingerprintTransactions(txs) + ":" + fingerprintDefinitions(defs)
}

// fingerprintTransactions hashes the transaction fields that affect valuation:
// id, net quantity, type, and the asset reference.
func fingerprintTransactions(txs []Transaction) string {
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s", t.ID, t.NetQuantity(), t.Type, t.AssetID))
	}
	return digest(lines)
}

// fingerprintDefinitions hashes the definition's classification identity only.
func fingerprintDefinitions(defs []AssetDefinition) string {
	lines := make([]string, 0, len(defs))
	for _, a := range defs {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s", a.ID, a.Type, a.ISIN, a.WKN))
	}
	return digest(lines)
}

func digest(lines []string) string {
	// Lines start with the record id, so sorting them sorts by id.
	slices.Sort(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return fmt.Sprintf("%x", sum)
}
