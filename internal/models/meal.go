package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Meal categories.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

var mealTypeLabels = map[string]string{
	MealTypeBreakfast: "Breakfast",
	MealTypeLunch:     "Lunch",
	MealTypeDinner:    "Dinner",
	MealTypeSnack:     "Snack",
}

// ValidMealType reports whether mealType is a known category.
func ValidMealType(mealType string) bool {
	_, ok := mealTypeLabels[mealType]
	return ok
}

// Meal records food intake. TotalCarbs is optional; nil means not tracked.
type Meal struct {
	ID               uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	LastModifiedByID *uuid.UUID       `gorm:"type:uuid;index:idx_meal_owner_occurred" json:"last_modified_by,omitempty"`
	LastModifiedBy   *User            `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	OccurredAt       time.Time        `gorm:"not null;index:idx_meal_owner_occurred" json:"occurred_at"`
	MealType         string           `gorm:"size:20;not null" json:"meal_type"`
	Description      string           `gorm:"type:text;not null" json:"description"`
	TotalCarbs       *decimal.Decimal `gorm:"type:decimal(6,1)" json:"total_carbs,omitempty"`
	Notes            string           `gorm:"type:text" json:"notes"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealTypeLabel returns the display name for the meal category.
func (m *Meal) MealTypeLabel() string {
	if label, ok := mealTypeLabels[m.MealType]; ok {
		return label
	}
	return m.MealType
}
