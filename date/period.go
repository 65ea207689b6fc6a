package date

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Period is the cadence at which a recurring payment arrives.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "annually"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// PerYear returns the number of payments per year for the period.
func (p Period) PerYear() int {
	switch p {
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case Yearly:
		return 1
	default:
		return 0
	}
}

// ParsePeriod parses a payment cadence from its textual form.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(s) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "annually", "yearly", "year", "annual":
		return Yearly, nil
	default:
		return 0, fmt.Errorf("unknown period %q, want monthly, quarterly or annually", s)
	}
}

// MarshalJSON encodes the period as its textual form.
func (p Period) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

// UnmarshalJSON decodes the period from its textual form.
func (p *Period) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
