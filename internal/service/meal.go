package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/models"
	"github.com/bradleyburgess/diabeateeze/internal/query"
)

// MealService handles meal entries.
type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// MealParams are the writable fields of a meal. TotalCarbs is optional.
type MealParams struct {
	OccurredAt       time.Time
	MealType         string
	Description      string
	TotalCarbs       *decimal.Decimal
	Notes            string
	LastModifiedByID *uuid.UUID
}

// Create stores a new meal attributed to the acting user.
func (s *MealService) Create(ctx context.Context, actorID uuid.UUID, p MealParams) (*models.Meal, error) {
	meal := models.Meal{
		OccurredAt:       p.OccurredAt,
		MealType:         p.MealType,
		Description:      p.Description,
		TotalCarbs:       p.TotalCarbs,
		Notes:            p.Notes,
		LastModifiedByID: stamp(p.LastModifiedByID, actorID),
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// Update modifies a meal owned by the acting user; absent or foreign meals
// are ErrNotFound.
func (s *MealService) Update(ctx context.Context, actorID, id uuid.UUID, p MealParams) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Where("id = ? AND last_modified_by_id = ?", id, actorID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	meal.OccurredAt = p.OccurredAt
	meal.MealType = p.MealType
	meal.Description = p.Description
	meal.TotalCarbs = p.TotalCarbs
	meal.Notes = p.Notes
	meal.LastModifiedByID = &actorID
	if err := s.db.WithContext(ctx).Save(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// Get fetches one meal by id.
func (s *MealService) Get(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// List returns one page of meals filtered to the given window.
func (s *MealService) List(ctx context.Context, opts ListOptions) ([]models.Meal, query.Page, error) {
	db := applyRange(s.db.WithContext(ctx).Model(&models.Meal{}), opts.Range)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, query.Page{}, err
	}
	page := query.Paginate(total, opts.Page, opts.PageSize)

	var meals []models.Meal
	err := db.Order(occurredAtOrder(opts.Sort)).
		Offset(page.Offset).
		Limit(page.Size).
		Find(&meals).Error
	if err != nil {
		return nil, query.Page{}, err
	}
	return meals, page, nil
}

// Filtered returns all meals in the window without pagination, for export.
func (s *MealService) Filtered(ctx context.Context, r query.Range, sort string) ([]models.Meal, error) {
	var meals []models.Meal
	err := applyRange(s.db.WithContext(ctx).Model(&models.Meal{}), r).
		Order(occurredAtOrder(sort)).
		Find(&meals).Error
	return meals, err
}
