package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDays(t *testing.T) {
	days := Days(Date(2024, time.February, 27), Date(2024, time.March, 2))
	require.Len(t, days, 5)
	assert.Equal(t, Date(2024, time.February, 29), days[2])
	assert.Equal(t, Date(2024, time.March, 2), days[4])

	assert.Empty(t, Days(Date(2024, time.March, 2), Date(2024, time.March, 1)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(Date(2019, time.May, 19), Date(2019, time.May, 19)))
	assert.Equal(t, 1, DaysBetween(Date(2019, time.May, 19), Date(2019, time.May, 20)))
	assert.Equal(t, 365, DaysBetween(Date(2019, time.January, 1), Date(2020, time.January, 1)))
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, Date(2024, time.February, 29), LastDayOfMonth(2024, time.February))
	assert.Equal(t, Date(2023, time.December, 31), LastDayOfMonth(2023, time.December))
}

func TestSpecialDays(t *testing.T) {
	assert.True(t, IsChristmasEve(Date(2020, time.December, 24)))
	assert.False(t, IsChristmasEve(Date(2020, time.December, 25)))
	assert.True(t, IsNewYearsEve(Date(2020, time.December, 31)))
	assert.True(t, IsBeforeApril(Date(2020, time.March, 31)))
	assert.False(t, IsBeforeApril(Date(2020, time.April, 1)))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(Date(2020, 1, 1), Date(2020, 1, 5), Date(2020, 1, 5), Date(2020, 1, 9)))
	assert.False(t, Overlaps(Date(2020, 1, 1), Date(2020, 1, 4), Date(2020, 1, 5), Date(2020, 1, 9)))
}

func TestNewFilterPeriod(t *testing.T) {
	year := Today(time.UTC).Year()

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "explicit period",
			start:     "01.02.2019",
			end:       "28.02.2019",
			wantStart: Date(2019, time.February, 1),
			wantEnd:   Date(2019, time.February, 28),
		},
		{
			name:      "empty values default to current year",
			wantStart: FirstDayOfYear(year),
			wantEnd:   LastDayOfYear(year),
		},
		{
			name:      "only start given",
			start:     "01.03." + time.Now().Format("2006"),
			wantStart: Date(year, time.March, 1),
			wantEnd:   LastDayOfYear(year),
		},
		{
			name:    "end before start",
			start:   "05.03.2019",
			end:     "04.03.2019",
			wantErr: true,
		},
		{
			name:      "iso dates",
			start:     "2019-03-05",
			end:       "2019-03-08",
			wantStart: Date(2019, time.March, 5),
			wantEnd:   Date(2019, time.March, 8),
		},
		{
			name:    "malformed start",
			start:   "5/3/2019",
			wantErr: true,
		},
		{
			name:    "malformed end",
			end:     "32.01.2019",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewFilterPeriod(tt.start, tt.end, time.UTC)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
		})
	}
}

func TestNewFilterPeriodErrors(t *testing.T) {
	_, err := NewFilterPeriod("x", "", time.UTC)
	var dateErr *DateError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "start", dateErr.Bound)

	_, err = NewFilterPeriod("", "y", time.UTC)
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "end", dateErr.Bound)

	_, err = NewFilterPeriod("02.01.2019", "01.01.2019", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
