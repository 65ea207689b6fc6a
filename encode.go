package passivincome

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Records are persisted as JSON Lines: one record per line, human-readable
// and diff-friendly. Field order inside each line is fixed by the record
// types' MarshalJSON.

func encodeLines[T any](w io.Writer, records []T) error {
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}

func decodeLines[T any](r io.Reader) ([]T, error) {
	var out []T
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scan.Scan() {
		line++
		b := scan.Bytes()
		if len(b) == 0 {
			continue
		}
		var record T
		if err := json.Unmarshal(b, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, record)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeTransactions writes the ledger, one transaction per line.
func EncodeTransactions(w io.Writer, txs []Transaction) error { return encodeLines(w, txs) }

// DecodeTransactions reads a ledger written by EncodeTransactions.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	txs, err := decodeLines[Transaction](r)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return txs, nil
}

// EncodeDefinitions writes the asset database, one definition per line.
func EncodeDefinitions(w io.Writer, defs []AssetDefinition) error { return encodeLines(w, defs) }

// DecodeDefinitions reads an asset database written by EncodeDefinitions.
func DecodeDefinitions(r io.Reader) ([]AssetDefinition, error) {
	defs, err := decodeLines[AssetDefinition](r)
	if err != nil {
		return nil, fmt.Errorf("reading asset definitions: %w", err)
	}
	return defs, nil
}

// EncodeIncomes writes the income records, one per line.
func EncodeIncomes(w io.Writer, incomes []IncomeRecord) error { return encodeLines(w, incomes) }

// DecodeIncomes reads income records written by EncodeIncomes.
func DecodeIncomes(r io.Reader) ([]IncomeRecord, error) {
	incomes, err := decodeLines[IncomeRecord](r)
	if err != nil {
		return nil, fmt.Errorf("reading income records: %w", err)
	}
	return incomes, nil
}

// LoadStore assembles a store from its three persisted record sets. Records
// are replayed through the store so every ledger rule applies on load too.
func LoadStore(defs []AssetDefinition, txs []Transaction, incomes []IncomeRecord) (*Store, error) {
	s := NewStore()
	for _, def := range defs {
		if err := s.AddDefinition(def); err != nil {
			return nil, err
		}
	}
	for _, t := range txs {
		if err := s.Record(t); err != nil {
			return nil, err
		}
	}
	for _, r := range incomes {
		if err := s.AddIncome(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}
