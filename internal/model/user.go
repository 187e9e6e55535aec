package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User holds the account and its current work settings. The rated fields
// are nullable: a fresh account has no schedule until the first settings
// update. Clock records snapshot these values at clock-in; changing them
// here never rewrites history.
type User struct {
	ID       string `gorm:"primaryKey;size:36"`
	Username string `gorm:"uniqueIndex;size:128;not null"`

	RatedDailySalary   decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	RatedWorkStartTime string              `gorm:"size:5"`
	RatedWorkEndTime   string              `gorm:"size:5"`
	RatedWorkHours     decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	RatedHourlyRate    decimal.NullDecimal `gorm:"type:decimal(10,4)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
