package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"timecard-backend/internal/ledger"
	"timecard-backend/internal/model"
	"timecard-backend/internal/store"
	"timecard-backend/internal/wage"
)

// Service manages a user's planned work settings. Updates only touch the
// profile; existing clock records keep the snapshot taken at their
// clock-in and are never rewritten.
type Service struct {
	store store.Store
}

// NewService creates a profile Service backed by the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// SetWorkSettings stores the daily salary and work window, deriving
// ratedWorkHours and ratedHourlyRate from them. A window whose end does
// not come after its start, or a zero-length window, is a configuration
// error.
func (s *Service) SetWorkSettings(ctx context.Context, userID string, dailySalary decimal.Decimal, startTime, endTime string) (model.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, ledger.ErrUserNotFound
		}
		return model.User{}, err
	}

	if !dailySalary.IsPositive() {
		return model.User{}, fmt.Errorf("%w: ratedDailySalary must be positive", ledger.ErrValidation)
	}

	hours, err := wage.HoursBetween(startTime, endTime)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	if !hours.IsPositive() {
		return model.User{}, fmt.Errorf("%w: work end time must be after start time", ledger.ErrValidation)
	}

	rate, err := wage.HourlyRate(dailySalary, hours)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}

	user.RatedDailySalary = decimal.NewNullDecimal(dailySalary.Round(2))
	user.RatedWorkStartTime = startTime
	user.RatedWorkEndTime = endTime
	user.RatedWorkHours = decimal.NewNullDecimal(hours)
	user.RatedHourlyRate = decimal.NewNullDecimal(rate)

	if err := s.store.SaveUserSettings(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
