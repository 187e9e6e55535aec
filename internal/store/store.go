package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"timecard-backend/internal/model"
)

// Store defines the interface for all database operations. Business
// components receive it via constructor injection; nothing reaches for a
// global handle.
type Store interface {
	GetUser(ctx context.Context, id string) (model.User, error)
	SaveUserSettings(ctx context.Context, user *model.User) error

	CreateClockRecord(ctx context.Context, rec *model.ClockRecord) error
	GetClockRecord(ctx context.Context, userID string, day int64) (model.ClockRecord, error)
	CloseClockRecord(ctx context.Context, rec *model.ClockRecord) error
	FindLatestOpenRecord(ctx context.Context, userID string) (model.ClockRecord, error)
	ListClockRecords(ctx context.Context, userID string, startDay, endDay int64) ([]model.ClockRecord, error)
}

var (
	// ErrNotFound indicates the requested user or record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateRecord indicates the (user, day) uniqueness constraint
	// rejected an insert.
	ErrDuplicateRecord = errors.New("clock record already exists for this day")
	// ErrAlreadyClosed indicates a conditional close matched no open row,
	// i.e. a concurrent writer settled the record first.
	ErrAlreadyClosed = errors.New("clock record already closed")
)

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return user, nil
}

func (s *gormStore) SaveUserSettings(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save settings for user %s: %w", user.ID, err)
	}
	return nil
}

// CreateClockRecord inserts a new open record. The composite unique index
// on (user_id, day) is the authoritative guard against concurrent double
// clock-ins; a violation surfaces as ErrDuplicateRecord.
func (s *gormStore) CreateClockRecord(ctx context.Context, rec *model.ClockRecord) error {
	err := s.db.WithContext(ctx).Create(rec).Error
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return ErrDuplicateRecord
	}
	return fmt.Errorf("failed to create clock record for user %s: %w", rec.UserID, err)
}

func (s *gormStore) GetClockRecord(ctx context.Context, userID string, day int64) (model.ClockRecord, error) {
	var rec model.ClockRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ClockRecord{}, ErrNotFound
	}
	if err != nil {
		return model.ClockRecord{}, fmt.Errorf("failed to fetch clock record for user %s: %w", userID, err)
	}
	return rec, nil
}

// CloseClockRecord persists the clock-out mutation. The update is
// conditional on the row still being open, so the second of two racing
// clock-outs matches zero rows and gets ErrAlreadyClosed instead of
// overwriting the settled values.
func (s *gormStore) CloseClockRecord(ctx context.Context, rec *model.ClockRecord) error {
	res := s.db.WithContext(ctx).
		Model(&model.ClockRecord{}).
		Where("id = ? AND clock_out_time IS NULL", rec.ID).
		Updates(map[string]any{
			"clock_out_time":        rec.ClockOutTime,
			"actual_work_hours":     rec.ActualWorkHours,
			"actual_hourly_rate":    rec.ActualHourlyRate,
			"expected_daily_salary": rec.ExpectedDailySalary,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to close clock record %s: %w", rec.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyClosed
	}
	return nil
}

func (s *gormStore) FindLatestOpenRecord(ctx context.Context, userID string) (model.ClockRecord, error) {
	var rec model.ClockRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND clock_out_time IS NULL", userID).
		Order("day DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ClockRecord{}, ErrNotFound
	}
	if err != nil {
		return model.ClockRecord{}, fmt.Errorf("failed to fetch open clock record for user %s: %w", userID, err)
	}
	return rec, nil
}

func (s *gormStore) ListClockRecords(ctx context.Context, userID string, startDay, endDay int64) ([]model.ClockRecord, error) {
	var recs []model.ClockRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day BETWEEN ? AND ?", userID, startDay, endDay).
		Order("day ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clock records for user %s: %w", userID, err)
	}
	return recs, nil
}

// isDuplicateKey recognizes a unique-constraint violation across the
// drivers in use (postgres in production, sqlite in tests).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
