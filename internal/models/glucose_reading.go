package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Glucose measurement units.
const (
	UnitMmolL = "mmol/L"
	UnitMgdL  = "mg/dL"
)

// ValidGlucoseUnit reports whether unit is a supported measurement unit.
func ValidGlucoseUnit(unit string) bool {
	return unit == UnitMmolL || unit == UnitMgdL
}

// GlucoseReading records a blood glucose measurement at a point in time.
type GlucoseReading struct {
	ID               uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	LastModifiedByID *uuid.UUID      `gorm:"type:uuid;index:idx_glucose_owner_occurred" json:"last_modified_by,omitempty"`
	LastModifiedBy   *User           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	OccurredAt       time.Time       `gorm:"not null;index:idx_glucose_owner_occurred" json:"occurred_at"`
	Value            decimal.Decimal `gorm:"type:decimal(5,1);not null" json:"value"`
	Unit             string          `gorm:"size:10;not null;default:'mmol/L'" json:"unit"`
	Notes            string          `gorm:"type:text" json:"notes"`
}

func (r *GlucoseReading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
