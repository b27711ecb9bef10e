package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InsulinDose records an administered dose. TotalUnits is always computed
// from base plus correction, never stored.
type InsulinDose struct {
	ID               uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	LastModifiedByID *uuid.UUID      `gorm:"type:uuid;index:idx_dose_owner_occurred" json:"last_modified_by,omitempty"`
	LastModifiedBy   *User           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	OccurredAt       time.Time       `gorm:"not null;index:idx_dose_owner_occurred" json:"occurred_at"`
	BaseUnits        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"base_units"`
	CorrectionUnits  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"correction_units"`
	InsulinTypeID    uuid.UUID       `gorm:"type:uuid;not null" json:"insulin_type_id"`
	InsulinType      *InsulinType    `gorm:"constraint:OnDelete:RESTRICT" json:"insulin_type,omitempty"`
	Notes            string          `gorm:"type:text" json:"notes"`
}

func (d *InsulinDose) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TotalUnits returns base plus correction units with exact decimal arithmetic.
func (d *InsulinDose) TotalUnits() decimal.Decimal {
	return d.BaseUnits.Add(d.CorrectionUnits)
}
