package passivincome

import (
	"errors"
	"fmt"
	"time"

	"github.com/cscheub/passivincome/date"
)

// AssetMonthlyIncome resolves the monthly income for a held quantity of an
// asset. A per-share figure cached on the record by the last dividend refresh
// is preferred; otherwise it falls back to the DividendInfo arithmetic.
// Assets with neither yield zero.
func AssetMonthlyIncome(a AssetDefinition, held Quantity) float64 {
	return monthlyPerShare(a) * held.AsFloat()
}

func monthlyPerShare(a AssetDefinition) float64 {
	if a.MonthlyPerShare != nil {
		return *a.MonthlyPerShare
	}
	if a.DividendInfo == nil {
		return 0
	}
	return a.DividendInfo.AnnualPerShare() / 12
}

// PaymentSchedule describes when and how much a recurring income pays.
// Amount is the amount per payment.
type PaymentSchedule struct {
	Frequency date.Period  `json:"frequency"`
	Amount    float64      `json:"amount"`
	Months    []time.Month `json:"months,omitempty"`
}

// Monthly returns the schedule's average monthly amount, or an error when the
// schedule is malformed. Callers aggregating many records skip erroring
// schedules instead of failing the whole computation.
func (s PaymentSchedule) Monthly() (float64, error) {
	if s.Amount < 0 {
		return 0, fmt.Errorf("payment amount %v is negative", s.Amount)
	}
	perYear := s.Frequency.PerYear()
	if len(s.Months) > 0 {
		for _, m := range s.Months {
			if m < time.January || m > time.December {
				return 0, fmt.Errorf("invalid payment month %d", m)
			}
		}
		perYear = len(s.Months)
	}
	if perYear == 0 {
		return 0, fmt.Errorf("unknown payment frequency %v", s.Frequency)
	}
	return s.Amount * float64(perYear) / 12, nil
}

// IncomeRecord is a recurring income source: a salary, a rental, an interest
// payment. When it stems from a portfolio asset, SourceID references the
// asset definition so the same income is never counted twice.
type IncomeRecord struct {
	ID       string           `json:"id"`
	Name     string           `json:"name,omitempty"`
	Category string           `json:"category"`
	Schedule *PaymentSchedule `json:"paymentSchedule,omitempty"`
	SourceID string           `json:"sourceId,omitempty"`
}

// MonthlyIncomeOf returns the record's average monthly amount.
func MonthlyIncomeOf(r IncomeRecord) (float64, error) {
	if r.Schedule == nil {
		return 0, errors.New("missing payment schedule")
	}
	return r.Schedule.Monthly()
}
