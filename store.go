package passivincome

import (
	"fmt"
	"log"
	"slices"
)

// Store holds the local records: the transaction ledger, the asset definition
// database, and the income records. It is the single writer for batch refresh
// results; everything handed out is a copy, so readers can never mutate the
// records behind its back.
type Store struct {
	transactions []Transaction
	definitions  []AssetDefinition
	incomes      []IncomeRecord
	byID         map[string]int // definition index by id
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Transactions returns a copy of the ledger, in recording order.
func (s *Store) Transactions() []Transaction { return slices.Clone(s.transactions) }

// Definitions returns a deep copy of the asset definitions.
func (s *Store) Definitions() []AssetDefinition {
	out := make([]AssetDefinition, 0, len(s.definitions))
	for _, def := range s.definitions {
		out = append(out, def.Clone())
	}
	return out
}

// Incomes returns a copy of the income records.
func (s *Store) Incomes() []IncomeRecord { return slices.Clone(s.incomes) }

// Definition returns a copy of the definition with the given id.
func (s *Store) Definition(id string) (AssetDefinition, bool) {
	i, ok := s.byID[id]
	if !ok {
		return AssetDefinition{}, false
	}
	return s.definitions[i].Clone(), true
}

// AddDefinition registers a new asset definition.
func (s *Store) AddDefinition(def AssetDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := s.byID[def.ID]; exists {
		return fmt.Errorf("asset %s already exists", def.ID)
	}
	s.byID[def.ID] = len(s.definitions)
	s.definitions = append(s.definitions, def.Clone())
	return nil
}

// AddIncome registers a recurring income record. A sourceId, when given, must
// reference a known asset.
func (s *Store) AddIncome(r IncomeRecord) error {
	if r.ID == "" {
		return fmt.Errorf("income record id is missing")
	}
	for _, have := range s.incomes {
		if have.ID == r.ID {
			return fmt.Errorf("income record %s already exists", r.ID)
		}
	}
	if r.SourceID != "" {
		if _, ok := s.byID[r.SourceID]; !ok {
			return fmt.Errorf("income record %s references unknown asset %s", r.ID, r.SourceID)
		}
	}
	s.incomes = append(s.incomes, r)
	return nil
}

// Record appends a transaction to the ledger. The referenced asset must exist,
// and a sell may not exceed the held quantity: a position can never go
// negative through the ledger.
func (s *Store) Record(t Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := s.byID[t.AssetID]; !ok {
		return fmt.Errorf("transaction %s references unknown asset %s", t.ID, t.AssetID)
	}
	for _, have := range s.transactions {
		if have.ID == t.ID {
			return fmt.Errorf("transaction %s already exists", t.ID)
		}
	}
	if t.Type == Sell {
		if held := s.held(t.AssetID); t.Quantity.GreaterThan(held) {
			return fmt.Errorf("cannot sell %s of %s, only %s held", t.Quantity, t.AssetID, held)
		}
	}
	s.transactions = append(s.transactions, t)
	return nil
}

// held returns the net quantity currently held for the asset.
func (s *Store) held(assetID string) Quantity {
	q := Q(0)
	for _, t := range s.transactions {
		if t.AssetID == assetID {
			q = q.Add(t.NetQuantity())
		}
	}
	return q
}

// Apply folds successful batch refresh results into the definition database as
// whole-record replacements, keyed by id. Failed results and results for
// unknown assets are skipped. It returns the number of records replaced.
func (s *Store) Apply(results []BatchResult) int {
	applied := 0
	for _, r := range results {
		if !r.Success || r.Updated == nil {
			continue
		}
		i, ok := s.byID[r.Updated.ID]
		if !ok {
			log.Printf("skipping refresh result for unknown asset %q", r.Updated.ID)
			continue
		}
		s.definitions[i] = r.Updated.Clone()
		applied++
	}
	return applied
}
