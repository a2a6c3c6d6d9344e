package models

import "fmt"

// Period is a human-friendly time-window token. Each token maps to the
// date_range parameter the stats API understands.
type Period string

const (
	// PeriodDay covers the last 24 hours.
	PeriodDay Period = "day"
	// Period7Days covers the last 7 days.
	Period7Days Period = "7d"
	// Period30Days covers the last 30 days.
	Period30Days Period = "30d"
	// PeriodMonth covers the current calendar month.
	PeriodMonth Period = "month"
	// Period6Months covers the last 6 months.
	Period6Months Period = "6mo"
	// Period12Months covers the last 12 months.
	Period12Months Period = "12mo"
)

// periodRanges maps each token to its API date_range parameter.
var periodRanges = map[Period]string{
	PeriodDay:      "day",
	Period7Days:    "7d",
	Period30Days:   "30d",
	PeriodMonth:    "month",
	Period6Months:  "6mo",
	Period12Months: "12mo",
}

var periodLabels = map[Period]string{
	PeriodDay:      "Last 24 hours",
	Period7Days:    "Last 7 days",
	Period30Days:   "Last 30 days",
	PeriodMonth:    "This month",
	Period6Months:  "Last 6 months",
	Period12Months: "Last 12 months",
}

// ParsePeriod validates a period token from user input.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := periodRanges[p]; !ok {
		return "", fmt.Errorf("unknown period %q (valid: day, 7d, 30d, month, 6mo, 12mo)", s)
	}
	return p, nil
}

// DateRange resolves the token to the API date_range parameter. The mapping
// is total over the enum and pure.
func (p Period) DateRange() (string, error) {
	r, ok := periodRanges[p]
	if !ok {
		return "", fmt.Errorf("unknown period %q", string(p))
	}
	return r, nil
}

// Label returns a human-readable description of the period.
func (p Period) Label() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return string(p)
}

func (p Period) String() string {
	return string(p)
}

// Periods returns all valid tokens in display order.
func Periods() []Period {
	return []Period{PeriodDay, Period7Days, Period30Days, PeriodMonth, Period6Months, Period12Months}
}

// NextPeriod cycles forward through the period list, wrapping around.
func NextPeriod(p Period) Period {
	all := Periods()
	for i, cur := range all {
		if cur == p {
			return all[(i+1)%len(all)]
		}
	}
	return PeriodDay
}

// PrevPeriod cycles backward through the period list, wrapping around.
func PrevPeriod(p Period) Period {
	all := Periods()
	for i, cur := range all {
		if cur == p {
			return all[(i-1+len(all))%len(all)]
		}
	}
	return PeriodDay
}
