package wage

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Pure wage arithmetic. All money and hour values are fixed-precision
// decimals: hourly rates carry 4 fractional digits, hours and salary
// amounts carry 2. Division by zero hours is a configuration error and is
// reported, never rounded over.

const (
	dayMillis  int64 = 86_400_000
	hourMillis int64 = 3_600_000

	// timeOfDayLayout is the wall-clock format for rated work windows.
	timeOfDayLayout = "15:04"
)

// ErrZeroHours is returned when a rate or salary computation would divide
// by zero hours.
var ErrZeroHours = errors.New("work hours must be non-zero")

// HoursBetween returns the wall-clock duration between two times of day
// ("HH:MM") in fractional hours, rounded to 2 digits. The window does not
// wrap past midnight: end <= start yields a non-positive result, which
// callers must treat as a configuration error.
func HoursBetween(start, end string) (decimal.Decimal, error) {
	s, err := time.Parse(timeOfDayLayout, start)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	e, err := time.Parse(timeOfDayLayout, end)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid end time %q: %w", end, err)
	}

	minutes := int64(e.Sub(s) / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(2), nil
}

// HourlyRate divides a daily salary by the hours worked per day, rounded
// to 4 digits.
func HourlyRate(dailySalary, hours decimal.Decimal) (decimal.Decimal, error) {
	if hours.IsZero() {
		return decimal.Decimal{}, ErrZeroHours
	}
	return dailySalary.Div(hours).Round(4), nil
}

// ElapsedHours converts an epoch-millisecond interval into fractional
// hours at full precision. Rounding is left to the consumers.
func ElapsedHours(startMs, endMs int64) decimal.Decimal {
	return decimal.NewFromInt(endMs - startMs).Div(decimal.NewFromInt(hourMillis))
}

// ExpectedDailySalary prorates the rated daily salary by the share of
// rated hours actually worked, rounded to 2 digits.
func ExpectedDailySalary(actualHours, ratedHours, ratedDailySalary decimal.Decimal) (decimal.Decimal, error) {
	if ratedHours.IsZero() {
		return decimal.Decimal{}, ErrZeroHours
	}
	return actualHours.Div(ratedHours).Mul(ratedDailySalary).Round(2), nil
}

// ActualHourlyRate divides the rated daily salary by the hours actually
// worked, rounded to 2 digits.
func ActualHourlyRate(ratedDailySalary, actualHours decimal.Decimal) (decimal.Decimal, error) {
	if actualHours.IsZero() {
		return decimal.Decimal{}, ErrZeroHours
	}
	return ratedDailySalary.Div(actualHours).Round(2), nil
}

// DayBucket floors an epoch-millisecond timestamp to the start of its UTC
// calendar day. Floor division, so pre-epoch timestamps bucket correctly
// too.
func DayBucket(ms int64) int64 {
	d := ms / dayMillis
	if ms%dayMillis != 0 && ms < 0 {
		d--
	}
	return d * dayMillis
}

// DayLabel renders a day bucket as an ISO calendar date (YYYY-MM-DD).
func DayLabel(day int64) string {
	return time.UnixMilli(day).UTC().Format(time.DateOnly)
}
