package wage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursBetween(t *testing.T) {
	testCases := []struct {
		name      string
		start     string
		end       string
		expected  string
		expectErr bool
	}{
		{
			name:     "Nine hour day",
			start:    "09:00",
			end:      "18:00",
			expected: "9",
		},
		{
			name:     "Fractional hours",
			start:    "09:30",
			end:      "17:15",
			expected: "7.75",
		},
		{
			name:     "End equals start is zero",
			start:    "09:00",
			end:      "09:00",
			expected: "0",
		},
		{
			name:     "End before start goes negative, no midnight wrap",
			start:    "22:00",
			end:      "06:00",
			expected: "-16",
		},
		{
			name:      "Malformed start",
			start:     "9 am",
			end:       "18:00",
			expectErr: true,
		},
		{
			name:      "Malformed end",
			start:     "09:00",
			end:       "25:99",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hours, err := HoursBetween(tc.start, tc.end)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, hours.Equal(decimal.RequireFromString(tc.expected)),
				"got %s, want %s", hours, tc.expected)
		})
	}
}

func TestHourlyRate(t *testing.T) {
	// 333 / 8 rounds to 41.6250 at 4 digits, not truncated.
	rate, err := HourlyRate(decimal.NewFromInt(333), decimal.NewFromInt(8))
	require.NoError(t, err)
	assert.Equal(t, "41.625", rate.String())
	assert.Equal(t, "41.6250", rate.StringFixed(4))

	_, err = HourlyRate(decimal.NewFromInt(800), decimal.Zero)
	assert.ErrorIs(t, err, ErrZeroHours)
}

func TestElapsedHours(t *testing.T) {
	// Exactly eight hours.
	assert.True(t, ElapsedHours(0, 28_800_000).Equal(decimal.NewFromInt(8)))

	// 90 minutes keeps full precision.
	assert.True(t, ElapsedHours(1_000_000, 6_400_000).Equal(decimal.RequireFromString("1.5")))

	// Zero interval.
	assert.True(t, ElapsedHours(42, 42).IsZero())
}

func TestExpectedDailySalary(t *testing.T) {
	salary, err := ExpectedDailySalary(decimal.NewFromInt(8), decimal.NewFromInt(8), decimal.NewFromInt(800))
	require.NoError(t, err)
	assert.Equal(t, "800.00", salary.StringFixed(2))

	// Half a day at half pay.
	salary, err = ExpectedDailySalary(decimal.NewFromInt(4), decimal.NewFromInt(8), decimal.NewFromInt(801))
	require.NoError(t, err)
	assert.Equal(t, "400.50", salary.StringFixed(2))

	_, err = ExpectedDailySalary(decimal.NewFromInt(8), decimal.Zero, decimal.NewFromInt(800))
	assert.ErrorIs(t, err, ErrZeroHours)
}

func TestActualHourlyRate(t *testing.T) {
	rate, err := ActualHourlyRate(decimal.NewFromInt(800), decimal.NewFromInt(8))
	require.NoError(t, err)
	assert.Equal(t, "100.00", rate.StringFixed(2))

	_, err = ActualHourlyRate(decimal.NewFromInt(800), decimal.Zero)
	assert.ErrorIs(t, err, ErrZeroHours)
}

func TestDayBucket(t *testing.T) {
	const day = int64(86_400_000)

	// Any two timestamps within the same UTC day share a bucket.
	assert.Equal(t, 19_000*day, DayBucket(19_000*day))
	assert.Equal(t, 19_000*day, DayBucket(19_000*day+12*3_600_000))
	assert.Equal(t, 19_000*day, DayBucket(19_001*day-1))

	// One millisecond across midnight lands in the next bucket.
	assert.Equal(t, 19_001*day, DayBucket(19_001*day))

	// Pre-epoch timestamps floor, not truncate.
	assert.Equal(t, -day, DayBucket(-1))
	assert.Equal(t, -day, DayBucket(-day))
	assert.Equal(t, -2*day, DayBucket(-day-1))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "1970-01-01", DayLabel(0))
	assert.Equal(t, "2024-01-01", DayLabel(1_704_067_200_000))
}
