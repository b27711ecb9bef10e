// Package query resolves list-view parameters: date ranges, quick filters,
// sort direction, page size and pagination bounds.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrBadDate is returned for date strings that do not parse as YYYY-MM-DD.
var ErrBadDate = errors.New("invalid date format, expected YYYY-MM-DD")

const dateLayout = "2006-01-02"

// DefaultPageSize is used when page_size is absent or invalid.
const DefaultPageSize = 50

// PageSizes are the accepted page_size values.
var PageSizes = []int{10, 25, 50, 100}

// Quick filter keywords.
const (
	QuickFilterToday     = "today"
	QuickFilterYesterday = "yesterday"
)

// Sort directions for occurred_at ordering.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Range is an inclusive occurred_at window. A nil bound is unbounded.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// ParseRange resolves start/end date strings and an optional quick filter
// into a concrete time window. A quick filter overrides explicit dates.
// A start date covers from midnight local time, an end date through the last
// nanosecond of that calendar day.
func ParseRange(startDate, endDate, quick string, now time.Time) (Range, error) {
	switch quick {
	case QuickFilterToday:
		return dayRange(now), nil
	case QuickFilterYesterday:
		return dayRange(now.AddDate(0, 0, -1)), nil
	}

	var r Range
	if startDate != "" {
		day, err := time.ParseInLocation(dateLayout, startDate, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("start_date %q: %w", startDate, ErrBadDate)
		}
		start := startOfDay(day)
		r.Start = &start
	}
	if endDate != "" {
		day, err := time.ParseInLocation(dateLayout, endDate, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("end_date %q: %w", endDate, ErrBadDate)
		}
		end := endOfDay(day)
		r.End = &end
	}
	return r, nil
}

func dayRange(t time.Time) Range {
	start := startOfDay(t)
	end := endOfDay(t)
	return Range{Start: &start, End: &end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// NormalizePageSize parses a page_size parameter, falling back to
// DefaultPageSize for anything that is not one of PageSizes. The whole
// value must be an integer; trailing garbage is rejected.
func NormalizePageSize(value string) int {
	size, err := strconv.Atoi(value)
	if err != nil {
		return DefaultPageSize
	}
	for _, allowed := range PageSizes {
		if size == allowed {
			return size
		}
	}
	return DefaultPageSize
}

// NormalizeSort returns SortAsc or SortDesc, defaulting to descending.
func NormalizeSort(value string) string {
	if value == SortAsc {
		return SortAsc
	}
	return SortDesc
}

// Page describes one page of a result set.
type Page struct {
	Number     int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	Offset     int   `json:"-"`
}

// Paginate computes the bounds for a 1-based page number over total records.
// A page below 1 becomes 1 and a page past the end clamps to the last page.
// An empty result set still has one (empty) page.
func Paginate(total int64, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Page{
		Number:     page,
		Size:       size,
		TotalCount: total,
		TotalPages: totalPages,
		Offset:     (page - 1) * size,
	}
}
