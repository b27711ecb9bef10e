package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradleyburgess/diabeateeze/internal/models"
)

func TestMealCarbsOptional(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewMealService(db)
	ctx := context.Background()

	carbs := decimal.RequireFromString("45.5")
	withCarbs, err := svc.Create(ctx, userID, MealParams{
		OccurredAt:  time.Now(),
		MealType:    models.MealTypeLunch,
		Description: "Chicken salad",
		TotalCarbs:  &carbs,
	})
	require.NoError(t, err)

	withoutCarbs, err := svc.Create(ctx, userID, MealParams{
		OccurredAt:  time.Now(),
		MealType:    models.MealTypeSnack,
		Description: "Apple",
	})
	require.NoError(t, err)

	reloaded, err := svc.Get(ctx, withCarbs.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.TotalCarbs)
	assert.True(t, reloaded.TotalCarbs.Equal(carbs))

	reloaded, err = svc.Get(ctx, withoutCarbs.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.TotalCarbs)
}

func TestMealUpdateCanClearCarbs(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewMealService(db)
	ctx := context.Background()

	carbs := decimal.RequireFromString("60")
	meal, err := svc.Create(ctx, userID, MealParams{
		OccurredAt:  time.Now(),
		MealType:    models.MealTypeDinner,
		Description: "Pasta",
		TotalCarbs:  &carbs,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userID, meal.ID, MealParams{
		OccurredAt:  meal.OccurredAt,
		MealType:    models.MealTypeDinner,
		Description: "Pasta",
	})
	require.NoError(t, err)
	assert.Nil(t, updated.TotalCarbs)
}

func TestMealUpdateByNonOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ownerID := createTestUser(t, db)
	intruderID := createTestUser(t, db)
	svc := NewMealService(db)
	ctx := context.Background()

	meal, err := svc.Create(ctx, ownerID, MealParams{
		OccurredAt:  time.Now(),
		MealType:    models.MealTypeBreakfast,
		Description: "Oatmeal",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, intruderID, meal.ID, MealParams{
		OccurredAt:  time.Now(),
		MealType:    models.MealTypeBreakfast,
		Description: "Tampered",
	})
	assert.True(t, errors.Is(err, ErrNotFound))
}
