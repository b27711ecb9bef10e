package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InsulinSchedule is a planned daily dose. TimeOfDay is a zero-padded
// "HH:MM" string so lexicographic ordering matches chronological ordering.
type InsulinSchedule struct {
	ID               uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	LastModifiedByID *uuid.UUID      `gorm:"type:uuid" json:"last_modified_by,omitempty"`
	LastModifiedBy   *User           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Label            string          `gorm:"size:100;not null" json:"label"`
	TimeOfDay        string          `gorm:"size:5;not null" json:"time_of_day"`
	InsulinTypeID    uuid.UUID       `gorm:"type:uuid;not null" json:"insulin_type_id"`
	InsulinType      *InsulinType    `gorm:"constraint:OnDelete:CASCADE" json:"insulin_type,omitempty"`
	Units            decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"units"`
	Notes            string          `gorm:"type:text" json:"notes"`
}

func (s *InsulinSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ValidTimeOfDay reports whether value parses as a zero-padded 24h "HH:MM".
func ValidTimeOfDay(value string) bool {
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}
