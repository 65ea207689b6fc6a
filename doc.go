// Package passivincome provides the functions and types for valuing a
// passive-income portfolio. It is designed to be local-first and auditable:
// all records live in human-readable files, and every derived figure can be
// recomputed from them.
//
// The core functionalities include:
//   - Ledger Management: recording buy, sell and dividend transactions in an
//     append-only, chronological record, with ledger rules enforced on write.
//   - Market Data Refresh: fetching prices, price histories, dividend
//     histories and intraday observations concurrently from pluggable
//     providers, with per-asset failure isolation.
//   - Valuation Cache: serving aggregated positions and totals from a
//     content-addressed cache, invalidated by a fingerprint of the records
//     that affect the valuation and by age.
//   - Dividend Analytics: trailing windows, compound annual growth rate and
//     payout forecasts derived from the realized dividend history.
//   - Income Aggregation: monthly income across explicit income records and
//     asset-derived dividends, counted exactly once.
//   - Data Persistence: encoding and decoding all records to and from
//     human-readable, version-controllable formats (JSONL).
//
// This package serves as the foundational logic for the `pic` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package passivincome
