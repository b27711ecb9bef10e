package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CorrectionScale is one row of the correction lookup table: when a reading
// is above GreaterThan, add UnitsToAdd to the dose. Rows are listed in
// ascending threshold order; overlap between rows is not enforced.
type CorrectionScale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	GreaterThan decimal.Decimal `gorm:"type:decimal(5,1);not null" json:"greater_than"`
	UnitsToAdd  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"units_to_add"`
}

func (s *CorrectionScale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
