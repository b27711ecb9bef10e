package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/config"
	"github.com/bradleyburgess/diabeateeze/internal/database"
	"github.com/bradleyburgess/diabeateeze/internal/logger"
	"github.com/bradleyburgess/diabeateeze/internal/models"
)

func main() {
	days := flag.Int("days", 30, "number of days of data to generate")
	clear := flag.Bool("clear", false, "clear existing data before seeding")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if *clear {
		logger.Info("clearing existing data")
		for _, model := range []interface{}{
			&models.InsulinDose{}, &models.GlucoseReading{}, &models.Meal{},
			&models.InsulinSchedule{}, &models.InsulinType{},
		} {
			if err := db.Where("1 = 1").Delete(model).Error; err != nil {
				logger.Fatal("failed to clear data", "error", err)
			}
		}
	}

	user, err := seedUser(db)
	if err != nil {
		logger.Fatal("failed to find or create user", "error", err)
	}

	types, err := seedInsulinTypes(db, user.ID)
	if err != nil {
		logger.Fatal("failed to create insulin types", "error", err)
	}

	if err := seedEntries(db, user.ID, types, *days); err != nil {
		logger.Fatal("failed to seed entries", "error", err)
	}

	logger.Info("seed complete", "days", *days, "user", user.Email)
}

func seedUser(db *gorm.DB) (*models.User, error) {
	var user models.User
	err := db.First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("seed-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Name:         "Seed User",
		Email:        "seed@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func seedInsulinTypes(db *gorm.DB, userID uuid.UUID) ([]models.InsulinType, error) {
	seedTypes := []models.InsulinType{
		{Name: "Humalog", Category: models.InsulinCategoryRapid, IsDefault: true},
		{Name: "NovoRapid", Category: models.InsulinCategoryRapid},
		{Name: "Lantus", Category: models.InsulinCategoryLong},
		{Name: "Levemir", Category: models.InsulinCategoryLong},
	}

	types := make([]models.InsulinType, 0, len(seedTypes))
	for _, t := range seedTypes {
		var existing models.InsulinType
		err := db.Where("name = ?", t.Name).First(&existing).Error
		if err == nil {
			types = append(types, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		t.LastModifiedByID = &userID
		if err := db.Create(&t).Error; err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func seedEntries(db *gorm.DB, userID uuid.UUID, types []models.InsulinType, days int) error {
	rapid, long := types[0], types[2]
	mealTypes := []string{models.MealTypeBreakfast, models.MealTypeLunch, models.MealTypeDinner}
	mealHours := []int{8, 13, 19}
	descriptions := map[string][]string{
		models.MealTypeBreakfast: {"Oatmeal with berries", "Toast and eggs", "Yoghurt and granola"},
		models.MealTypeLunch:     {"Chicken salad", "Lentil soup and bread", "Tuna sandwich"},
		models.MealTypeDinner:    {"Grilled salmon with rice", "Pasta with vegetables", "Stir fry with tofu"},
	}

	now := time.Now()
	for day := 0; day < days; day++ {
		date := now.AddDate(0, 0, -day)

		// Morning basal dose
		basalAt := at(date, 7, 30)
		if err := db.Create(&models.InsulinDose{
			OccurredAt:       basalAt,
			BaseUnits:        decimal.NewFromInt(int64(18 + rand.Intn(5))),
			CorrectionUnits:  decimal.Zero,
			InsulinTypeID:    long.ID,
			LastModifiedByID: &userID,
		}).Error; err != nil {
			return err
		}

		for i, mealType := range mealTypes {
			occurred := at(date, mealHours[i], rand.Intn(40))

			value := decimal.NewFromFloat(4.0 + rand.Float64()*8.0).Round(1)
			if err := db.Create(&models.GlucoseReading{
				OccurredAt:       occurred.Add(-15 * time.Minute),
				Value:            value,
				Unit:             models.UnitMmolL,
				LastModifiedByID: &userID,
			}).Error; err != nil {
				return err
			}

			carbs := decimal.NewFromFloat(20.0 + rand.Float64()*60.0).Round(1)
			options := descriptions[mealType]
			if err := db.Create(&models.Meal{
				OccurredAt:       occurred,
				MealType:         mealType,
				Description:      options[rand.Intn(len(options))],
				TotalCarbs:       &carbs,
				LastModifiedByID: &userID,
			}).Error; err != nil {
				return err
			}

			correction := decimal.Zero
			if value.GreaterThan(decimal.NewFromInt(10)) {
				correction = decimal.NewFromInt(2)
			}
			if err := db.Create(&models.InsulinDose{
				OccurredAt:       occurred,
				BaseUnits:        decimal.NewFromInt(int64(4 + rand.Intn(5))),
				CorrectionUnits:  correction,
				InsulinTypeID:    rapid.ID,
				Notes:            fmt.Sprintf("with %s", mealType),
				LastModifiedByID: &userID,
			}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
