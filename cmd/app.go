// Package cmd implements the CLI application to manage a passive-income
// portfolio: record transactions, refresh market data, and report on
// holdings, allocations and dividend forecasts.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/cscheub/passivincome"
	"github.com/cscheub/passivincome/finnhub"
	"github.com/cscheub/passivincome/yahoo"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application. A main package registers
// them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	newBuyCmd(),
	newSellCmd(),
	newDividendCmd(),
	&addAssetCmd{},
	&addIncomeCmd{},
	&updateCmd{},
	&holdingCmd{},
	&allocationCmd{},
	&forecastCmd{},
	&clearCacheCmd{},
	&assistCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok to use
// global variables for the app configuration.

var assetsFile = flag.String("assets-file", envOr("PIC_ASSETS_FILE", "assets.jsonl"), "Path to the asset definitions file (JSONL format)")
var ledgerFile = flag.String("ledger-file", envOr("PIC_LEDGER_FILE", "transactions.jsonl"), "Path to the ledger file containing transactions (JSONL format)")
var incomesFile = flag.String("incomes-file", envOr("PIC_INCOMES_FILE", "incomes.jsonl"), "Path to the income records file (JSONL format)")
var cacheFile = flag.String("cache-file", envOr("PIC_CACHE_FILE", ".portfolio-cache.json"), "Path to the persisted portfolio cache")
var providerName = flag.String("provider", envOr("PIC_PROVIDER", "yahoo"), "Market data provider (yahoo or finnhub)")
var defaultCurrency = flag.String("currency", envOr("PIC_CURRENCY", "EUR"), "Default currency for new records")

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// decodeRecords reads one record file, treating a missing file as empty.
func decodeRecords[T any](filename string, decode func(r *os.File) ([]T, error)) ([]T, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, %q does not exist, starting empty", filename)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// DecodeStore loads the store from the app record files.
func DecodeStore() (*passivincome.Store, error) {
	defs, err := decodeRecords(*assetsFile, func(f *os.File) ([]passivincome.AssetDefinition, error) {
		return passivincome.DecodeDefinitions(f)
	})
	if err != nil {
		return nil, err
	}
	txs, err := decodeRecords(*ledgerFile, func(f *os.File) ([]passivincome.Transaction, error) {
		return passivincome.DecodeTransactions(f)
	})
	if err != nil {
		return nil, err
	}
	incomes, err := decodeRecords(*incomesFile, func(f *os.File) ([]passivincome.IncomeRecord, error) {
		return passivincome.DecodeIncomes(f)
	})
	if err != nil {
		return nil, err
	}
	return passivincome.LoadStore(defs, txs, incomes)
}

// EncodeDefinitions writes the asset definition database back to disk.
func EncodeDefinitions(defs []passivincome.AssetDefinition) error {
	f, err := os.Create(*assetsFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return passivincome.EncodeDefinitions(f, defs)
}

// AppendTransaction appends a single transaction to the app ledger file.
func AppendTransaction(t passivincome.Transaction) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := passivincome.EncodeTransactions(f, []passivincome.Transaction{t}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// AppendIncome appends a single income record to the app incomes file.
func AppendIncome(r passivincome.IncomeRecord) subcommands.ExitStatus {
	f, err := os.OpenFile(*incomesFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening incomes file %q: %v\n", *incomesFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := passivincome.EncodeIncomes(f, []passivincome.IncomeRecord{r}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to incomes file %q: %v\n", *incomesFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended income record to %s\n", *incomesFile)
	return subcommands.ExitSuccess
}

// NewProvider returns the market data provider selected by the app
// credentials. Missing or unknown credentials fail here, before any refresh
// work starts.
func NewProvider() (passivincome.MarketProvider, error) {
	c := passivincome.Credentials{Provider: *providerName}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Provider {
	case "yahoo":
		return yahoo.New(), nil
	case "finnhub":
		return finnhub.New(c)
	default:
		return nil, fmt.Errorf("unknown provider %q, want yahoo or finnhub", c.Provider)
	}
}

// OpenValuation returns the valuation service, restoring the persisted cache
// when one exists. A corrupt cache file is logged and treated as a miss.
func OpenValuation() *passivincome.Valuation {
	v := passivincome.NewValuation()
	f, err := os.Open(*cacheFile)
	if err != nil {
		return v
	}
	defer f.Close()

	c, err := passivincome.DecodeCache(f)
	if err != nil {
		log.Printf("ignoring persisted cache: %v", err)
		return v
	}
	if err := v.Restore(c); err != nil {
		log.Printf("ignoring persisted cache: %v", err)
	}
	return v
}

// CloseValuation persists the valuation cache, removing the file when the
// cache is empty or invalidated.
func CloseValuation(v *passivincome.Valuation) error {
	c := v.Cache()
	if c == nil {
		err := os.Remove(*cacheFile)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	f, err := os.Create(*cacheFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return passivincome.EncodeCache(f, c)
}
