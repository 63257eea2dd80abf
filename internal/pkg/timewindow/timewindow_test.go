package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	loc := time.UTC
	at := time.Date(2024, 3, 15, 14, 37, 12, 0, loc)

	start, end := DayBounds(at, loc)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999000000, loc), end)
}

func TestDayBounds_MidnightInput(t *testing.T) {
	loc := time.UTC
	at := time.Date(2024, 3, 15, 0, 0, 0, 0, loc)

	start, end := DayBounds(at, loc)

	assert.Equal(t, at, start)
	assert.True(t, end.After(start))
	assert.Equal(t, 15, end.Day())
}

func TestMonthBounds(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name      string
		month     int
		year      int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "regular month",
			month:     3,
			year:      2024,
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 3, 31, 23, 59, 59, 999000000, loc),
		},
		{
			name:      "leap february",
			month:     2,
			year:      2024,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 999000000, loc),
		},
		{
			name:      "non-leap february",
			month:     2,
			year:      2023,
			wantStart: time.Date(2023, 2, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2023, 2, 28, 23, 59, 59, 999000000, loc),
		},
		{
			name:      "month zero rolls back to prior december",
			month:     0,
			year:      2024,
			wantStart: time.Date(2023, 12, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2023, 12, 31, 23, 59, 59, 999000000, loc),
		},
		{
			name:      "month thirteen rolls forward to next january",
			month:     13,
			year:      2023,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 1, 31, 23, 59, 59, 999000000, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBounds(tt.month, tt.year, loc)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.UTC
	at := time.Date(2024, 3, 15, 23, 59, 59, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), DateOnly(at, loc))
}

func TestDateOnly_CrossZone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 18:00 UTC on the 15th is already the 16th in Jakarta (UTC+7).
	at := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, 16, DateOnly(at, jakarta).Day())
	assert.Equal(t, 15, DateOnly(at, time.UTC).Day())
}
