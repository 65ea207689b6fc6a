package date

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range between two dates, inclusive.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// TrailingYears returns the range covering the n years ending at 'to', inclusive.
func TrailingYears(to Date, n int) Range {
	return Range{From: to.AddYears(-n), To: to}
}

// Contains returns true when the date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days the range spans.
func (r Range) Days() int { return r.To.Sub(r.From) }
