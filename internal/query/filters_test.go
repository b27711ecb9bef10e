package query

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeExplicitDates(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	r, err := ParseRange("2025-06-01", "2025-06-10", "", now)
	require.NoError(t, err)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), *r.Start)
	assert.Equal(t, 2025, r.End.Year())
	assert.Equal(t, 23, r.End.Hour())
	assert.Equal(t, 59, r.End.Minute())
	// The end bound covers the whole calendar day.
	assert.True(t, r.End.After(time.Date(2025, 6, 10, 23, 59, 59, 0, time.Local)) ||
		r.End.Equal(time.Date(2025, 6, 10, 23, 59, 59, 0, time.Local)))
}

func TestParseRangeOpenEnded(t *testing.T) {
	now := time.Now()

	r, err := ParseRange("2025-06-01", "", "", now)
	require.NoError(t, err)
	assert.NotNil(t, r.Start)
	assert.Nil(t, r.End)

	r, err = ParseRange("", "", "", now)
	require.NoError(t, err)
	assert.Nil(t, r.Start)
	assert.Nil(t, r.End)
}

func TestParseRangeQuickFilterOverridesDates(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	r, err := ParseRange("2020-01-01", "2020-12-31", QuickFilterToday, now)
	require.NoError(t, err)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), *r.Start)
	assert.Equal(t, 15, r.End.Day())

	r, err = ParseRange("", "", QuickFilterYesterday, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.Local), *r.Start)
	assert.Equal(t, 14, r.End.Day())
}

func TestParseRangeBadDate(t *testing.T) {
	now := time.Now()

	for _, bad := range []string{"06/15/2025", "2025-13-40", "yesterday", "garbage"} {
		_, err := ParseRange(bad, "", "", now)
		assert.True(t, errors.Is(err, ErrBadDate), "start_date %q should be rejected", bad)

		_, err = ParseRange("", bad, "", now)
		assert.True(t, errors.Is(err, ErrBadDate), "end_date %q should be rejected", bad)
	}
}

func TestNormalizePageSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"25", 25},
		{"50", 50},
		{"100", 100},
		{"13", DefaultPageSize},
		{"10abc", DefaultPageSize},
		{"25 ", DefaultPageSize},
		{"0", DefaultPageSize},
		{"-5", DefaultPageSize},
		{"huge", DefaultPageSize},
		{"", DefaultPageSize},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePageSize(tt.in), "page_size %q", tt.in)
	}
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, SortAsc, NormalizeSort("asc"))
	assert.Equal(t, SortDesc, NormalizeSort("desc"))
	assert.Equal(t, SortDesc, NormalizeSort(""))
	assert.Equal(t, SortDesc, NormalizeSort("sideways"))
}

func TestPaginateClampsPageNumber(t *testing.T) {
	p := Paginate(95, 0, 10)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, 10, p.TotalPages)

	p = Paginate(95, 42, 10)
	assert.Equal(t, 10, p.Number)
	assert.Equal(t, 90, p.Offset)

	p = Paginate(95, 3, 10)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 20, p.Offset)
	assert.Equal(t, int64(95), p.TotalCount)
}

func TestPaginateEmptySet(t *testing.T) {
	p := Paginate(0, 5, 25)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, int64(0), p.TotalCount)
}
