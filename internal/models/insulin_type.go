package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Insulin action categories.
const (
	InsulinCategoryRapid        = "rapid"
	InsulinCategoryShort        = "short"
	InsulinCategoryIntermediate = "intermediate"
	InsulinCategoryLong         = "long"
	InsulinCategoryUltraLong    = "ultra_long"
	InsulinCategoryPremixed     = "premixed"
)

// InsulinCategories lists the accepted values for InsulinType.Category.
var InsulinCategories = []string{
	InsulinCategoryRapid,
	InsulinCategoryShort,
	InsulinCategoryIntermediate,
	InsulinCategoryLong,
	InsulinCategoryUltraLong,
	InsulinCategoryPremixed,
}

var insulinCategoryLabels = map[string]string{
	InsulinCategoryRapid:        "Rapid-Acting",
	InsulinCategoryShort:        "Short-Acting",
	InsulinCategoryIntermediate: "Intermediate-Acting",
	InsulinCategoryLong:         "Long-Acting",
	InsulinCategoryUltraLong:    "Ultra Long-Acting",
	InsulinCategoryPremixed:     "Premixed",
}

// ValidInsulinCategory reports whether category is one of the known values.
func ValidInsulinCategory(category string) bool {
	_, ok := insulinCategoryLabels[category]
	return ok
}

// InsulinType is the reference table of insulin products. At most one row
// may have IsDefault set; the service layer enforces that in a transaction.
type InsulinType struct {
	ID               uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	LastModifiedByID *uuid.UUID `gorm:"type:uuid" json:"last_modified_by,omitempty"`
	LastModifiedBy   *User      `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Name             string     `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Category         string     `gorm:"size:20;not null;default:'rapid'" json:"category"`
	Notes            string     `gorm:"type:text" json:"notes"`
	IsDefault        bool       `gorm:"not null;default:false" json:"is_default"`
}

func (t *InsulinType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// CategoryLabel returns the display name for the category.
func (t *InsulinType) CategoryLabel() string {
	if label, ok := insulinCategoryLabels[t.Category]; ok {
		return label
	}
	return t.Category
}
