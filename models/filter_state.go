package models

import "strings"

// DateRange defines the set of allowed date buckets for the date filter.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// FilterAll is the sentinel value that disables the source and company filters.
const FilterAll = "all"

// ParseDateRange maps a control value onto a DateRange. Unknown values disable the filter.
func ParseDateRange(v string) DateRange {
	switch DateRange(v) {
	case DateRangeToday, DateRangeWeek, DateRangeMonth:
		return DateRange(v)
	default:
		return DateRangeAll
	}
}

// MaxDays is the largest elapsed-day count the range admits, or -1 for DateRangeAll.
func (d DateRange) MaxDays() int {
	switch d {
	case DateRangeToday:
		return 1
	case DateRangeWeek:
		return 7
	case DateRangeMonth:
		return 30
	default:
		return -1
	}
}

type FilterState struct {
	Date    DateRange `json:"date"`
	Source  string    `json:"source"`
	Company string    `json:"company"`
	Keyword string    `json:"keyword"`
}

// DefaultFilterState returns the state in which every item passes.
func DefaultFilterState() FilterState {
	return FilterState{
		Date:    DateRangeAll,
		Source:  FilterAll,
		Company: FilterAll,
		Keyword: "",
	}
}

// NormalizeKeyword lowercases the free-text keyword the way the keyword control stores it.
func NormalizeKeyword(v string) string {
	return strings.ToLower(v)
}

// IsDefault reports whether no filter is active.
func (s FilterState) IsDefault() bool {
	return s == DefaultFilterState()
}
