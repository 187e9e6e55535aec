package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"timecard-backend/internal/model"
	"timecard-backend/internal/store"
	"timecard-backend/internal/wage"
)

// Ledger owns the daily clock-in/clock-out state machine. Each (user,
// day) pair moves through NONE -> OPEN -> CLOSED, never backwards, and at
// most one record exists per pair.
type Ledger struct {
	store store.Store

	// resolveOpenRecord switches clock-out lookup from "record whose day
	// matches the clock-out timestamp" to "latest open record". The
	// default (false) preserves the historical behavior, under which a
	// shift clocked in before midnight cannot be clocked out after it.
	resolveOpenRecord bool

	// now supplies the wall clock for TodayRecord; injectable for tests.
	now func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithOpenRecordResolution makes clock-out locate the latest open record
// instead of bucketing the clock-out timestamp.
func WithOpenRecordResolution(enabled bool) Option {
	return func(l *Ledger) { l.resolveOpenRecord = enabled }
}

// WithClock overrides the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger backed by the given store.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{store: s, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ClockInInput carries the rated snapshot supplied at clock-in time.
type ClockInInput struct {
	ClockInTime        int64
	RatedWorkStartTime string
	RatedWorkEndTime   string
	RatedWorkHours     decimal.Decimal
	RatedDailySalary   decimal.Decimal
	RatedHourlyRate    decimal.Decimal
}

// ClockInResult echoes the persisted record's day, clock-in time and
// rated snapshot.
type ClockInResult struct {
	Day                int64
	ClockInTime        int64
	RatedWorkStartTime string
	RatedWorkEndTime   string
	RatedWorkHours     decimal.Decimal
	RatedDailySalary   decimal.Decimal
	RatedHourlyRate    decimal.Decimal
}

// ClockOutResult carries the values settled at clock-out.
type ClockOutResult struct {
	ClockOutTime        int64
	ActualWorkHours     decimal.Decimal
	ExpectedDailySalary decimal.Decimal
	ActualHourlyRate    decimal.Decimal
}

// ClockIn opens the attendance record for the UTC day of the clock-in
// timestamp, snapshotting the rated values as given. A second clock-in on
// the same day fails with ErrAlreadyClockedIn whether it is caught by the
// pre-check or by the store's unique index under concurrency.
func (l *Ledger) ClockIn(ctx context.Context, userID string, in ClockInInput) (ClockInResult, error) {
	if _, err := l.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ClockInResult{}, ErrUserNotFound
		}
		return ClockInResult{}, err
	}

	if err := validateClockIn(in); err != nil {
		return ClockInResult{}, err
	}

	day := wage.DayBucket(in.ClockInTime)

	if _, err := l.store.GetClockRecord(ctx, userID, day); err == nil {
		return ClockInResult{}, ErrAlreadyClockedIn
	} else if !errors.Is(err, store.ErrNotFound) {
		return ClockInResult{}, err
	}

	rec := model.ClockRecord{
		UserID:             userID,
		Day:                day,
		ClockInTime:        in.ClockInTime,
		RatedWorkStartTime: in.RatedWorkStartTime,
		RatedWorkEndTime:   in.RatedWorkEndTime,
		RatedWorkHours:     in.RatedWorkHours.Round(2),
		RatedDailySalary:   in.RatedDailySalary.Round(2),
		RatedHourlyRate:    in.RatedHourlyRate.Round(4),
	}

	if err := l.store.CreateClockRecord(ctx, &rec); err != nil {
		if errors.Is(err, store.ErrDuplicateRecord) {
			return ClockInResult{}, ErrAlreadyClockedIn
		}
		return ClockInResult{}, err
	}

	return ClockInResult{
		Day:                rec.Day,
		ClockInTime:        rec.ClockInTime,
		RatedWorkStartTime: rec.RatedWorkStartTime,
		RatedWorkEndTime:   rec.RatedWorkEndTime,
		RatedWorkHours:     rec.RatedWorkHours,
		RatedDailySalary:   rec.RatedDailySalary,
		RatedHourlyRate:    rec.RatedHourlyRate,
	}, nil
}

// ClockOut settles the open record with the actual hours and derived wage
// values, computed against the record's own rated snapshot rather than
// the live profile. The record is mutated exactly once; a concurrent
// double clock-out loses the conditional update and fails with
// ErrAlreadyClockedOut.
func (l *Ledger) ClockOut(ctx context.Context, userID string, clockOutTime int64) (ClockOutResult, error) {
	if _, err := l.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ClockOutResult{}, ErrUserNotFound
		}
		return ClockOutResult{}, err
	}
	if clockOutTime <= 0 {
		return ClockOutResult{}, fmt.Errorf("%w: clockOutTime is required", ErrValidation)
	}

	rec, err := l.findClockOutTarget(ctx, userID, clockOutTime)
	if err != nil {
		return ClockOutResult{}, err
	}
	if !rec.Open() {
		return ClockOutResult{}, ErrAlreadyClockedOut
	}

	actualHours := wage.ElapsedHours(rec.ClockInTime, clockOutTime)
	if !actualHours.IsPositive() {
		return ClockOutResult{}, fmt.Errorf("%w: clock-out time must be after clock-in time", ErrValidation)
	}

	expectedSalary, err := wage.ExpectedDailySalary(actualHours, rec.RatedWorkHours, rec.RatedDailySalary)
	if err != nil {
		return ClockOutResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	actualRate, err := wage.ActualHourlyRate(rec.RatedDailySalary, actualHours)
	if err != nil {
		return ClockOutResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	rec.ClockOutTime = &clockOutTime
	rec.ActualWorkHours = decimal.NewNullDecimal(actualHours.Round(2))
	rec.ActualHourlyRate = decimal.NewNullDecimal(actualRate)
	rec.ExpectedDailySalary = decimal.NewNullDecimal(expectedSalary)

	if err := l.store.CloseClockRecord(ctx, &rec); err != nil {
		if errors.Is(err, store.ErrAlreadyClosed) {
			return ClockOutResult{}, ErrAlreadyClockedOut
		}
		return ClockOutResult{}, err
	}

	return ClockOutResult{
		ClockOutTime:        clockOutTime,
		ActualWorkHours:     rec.ActualWorkHours.Decimal,
		ExpectedDailySalary: expectedSalary,
		ActualHourlyRate:    actualRate,
	}, nil
}

// TodayRecord returns the record for the current UTC day, or nil when the
// user has not clocked in yet. A missing record is a normal outcome, not
// an error.
func (l *Ledger) TodayRecord(ctx context.Context, userID string) (*model.ClockRecord, error) {
	if _, err := l.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	day := wage.DayBucket(l.now().UnixMilli())
	rec, err := l.store.GetClockRecord(ctx, userID, day)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (l *Ledger) findClockOutTarget(ctx context.Context, userID string, clockOutTime int64) (model.ClockRecord, error) {
	var rec model.ClockRecord
	var err error
	if l.resolveOpenRecord {
		rec, err = l.store.FindLatestOpenRecord(ctx, userID)
	} else {
		rec, err = l.store.GetClockRecord(ctx, userID, wage.DayBucket(clockOutTime))
	}
	if errors.Is(err, store.ErrNotFound) {
		return model.ClockRecord{}, ErrNoOpenRecord
	}
	return rec, err
}

func validateClockIn(in ClockInInput) error {
	if in.ClockInTime <= 0 {
		return fmt.Errorf("%w: clockInTime is required", ErrValidation)
	}
	if _, err := wage.HoursBetween(in.RatedWorkStartTime, in.RatedWorkEndTime); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !in.RatedWorkHours.IsPositive() {
		return fmt.Errorf("%w: ratedWorkHours must be positive", ErrValidation)
	}
	if !in.RatedDailySalary.IsPositive() {
		return fmt.Errorf("%w: ratedDailySalary must be positive", ErrValidation)
	}
	if !in.RatedHourlyRate.IsPositive() {
		return fmt.Errorf("%w: ratedHourlyRate must be positive", ErrValidation)
	}
	return nil
}
