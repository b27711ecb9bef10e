package database

import (
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/models"
)

// Migrate brings the schema up to date for every entity kind.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InsulinType{},
		&models.GlucoseReading{},
		&models.InsulinDose{},
		&models.Meal{},
		&models.InsulinSchedule{},
		&models.CorrectionScale{},
	)
}
