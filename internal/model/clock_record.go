package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClockRecord is one attendance row per (user, UTC day). It is created at
// clock-in with the rated snapshot and mutated exactly once at clock-out,
// when the actual fields are settled. Day is the clock-in timestamp
// floored to UTC midnight, in epoch milliseconds; together with UserID it
// forms the natural key.
type ClockRecord struct {
	ID     string `gorm:"primaryKey;size:36"`
	UserID string `gorm:"size:36;not null;uniqueIndex:idx_clock_records_user_day"`
	Day    int64  `gorm:"not null;uniqueIndex:idx_clock_records_user_day"`

	ClockInTime  int64  `gorm:"not null"`
	ClockOutTime *int64 // nil while the record is open

	RatedWorkStartTime string          `gorm:"size:5;not null"`
	RatedWorkEndTime   string          `gorm:"size:5;not null"`
	RatedWorkHours     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	RatedDailySalary   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RatedHourlyRate    decimal.Decimal `gorm:"type:decimal(10,4);not null"`

	ActualWorkHours     decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	ActualHourlyRate    decimal.NullDecimal `gorm:"type:decimal(10,4)"`
	ExpectedDailySalary decimal.NullDecimal `gorm:"type:decimal(10,2)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (r *ClockRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Open reports whether the record has not been clocked out yet.
func (r *ClockRecord) Open() bool {
	return r.ClockOutTime == nil
}
