package passivincome

import (
	"testing"
	"time"

	"github.com/cscheub/passivincome/date"
)

func TestAssetMonthlyIncome(t *testing.T) {
	cached := 1.5
	testCases := []struct {
		name  string
		asset AssetDefinition
		held  float64
		want  float64
	}{
		{"no dividend data", AssetDefinition{}, 10, 0},
		{"annualized amount", AssetDefinition{
			DividendInfo: &DividendInfo{Frequency: date.Quarterly, Amount: 12.5},
		}, 10, 125.0 / 12},
		{"per-payout amount with months", AssetDefinition{
			DividendInfo: &DividendInfo{Frequency: date.Quarterly, Amount: 3,
				Months: []time.Month{time.March, time.June, time.September, time.December}},
		}, 10, 120.0 / 12},
		{"cached figure wins over info", AssetDefinition{
			MonthlyPerShare: &cached,
			DividendInfo:    &DividendInfo{Frequency: date.Yearly, Amount: 1200},
		}, 2, 3},
		{"nothing held", AssetDefinition{
			DividendInfo: &DividendInfo{Frequency: date.Monthly, Amount: 12},
		}, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AssetMonthlyIncome(tc.asset, Q(tc.held)); !almost(got, tc.want) {
				t.Errorf("AssetMonthlyIncome = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPaymentScheduleMonthly(t *testing.T) {
	testCases := []struct {
		name      string
		schedule  PaymentSchedule
		want      float64
		expectErr bool
	}{
		{"monthly", PaymentSchedule{Frequency: date.Monthly, Amount: 100}, 100, false},
		{"quarterly", PaymentSchedule{Frequency: date.Quarterly, Amount: 300}, 100, false},
		{"annually", PaymentSchedule{Frequency: date.Yearly, Amount: 1200}, 100, false},
		{"months override frequency", PaymentSchedule{Frequency: date.Monthly, Amount: 60,
			Months: []time.Month{time.January, time.July}}, 10, false},
		{"negative amount", PaymentSchedule{Frequency: date.Monthly, Amount: -1}, 0, true},
		{"invalid month", PaymentSchedule{Frequency: date.Monthly, Amount: 1,
			Months: []time.Month{time.Month(13)}}, 0, true},
		{"unknown frequency", PaymentSchedule{Frequency: date.Period(9), Amount: 1}, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.schedule.Monthly()
			if (err != nil) != tc.expectErr {
				t.Fatalf("Monthly() error = %v, want error: %v", err, tc.expectErr)
			}
			if err == nil && !almost(got, tc.want) {
				t.Errorf("Monthly() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMonthlyIncomeOfRequiresSchedule(t *testing.T) {
	if _, err := MonthlyIncomeOf(IncomeRecord{ID: "r1"}); err == nil {
		t.Error("MonthlyIncomeOf accepted a record without schedule")
	}
}
