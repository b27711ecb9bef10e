package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/models"
	"github.com/bradleyburgess/diabeateeze/internal/query"
)

// ScaleService handles the correction-scale lookup table.
type ScaleService struct {
	db *gorm.DB
}

func NewScaleService(db *gorm.DB) *ScaleService {
	return &ScaleService{db: db}
}

// ScaleParams are the writable fields of a correction-scale row.
type ScaleParams struct {
	GreaterThan decimal.Decimal
	UnitsToAdd  decimal.Decimal
}

// Create stores a new correction-scale row.
func (s *ScaleService) Create(ctx context.Context, p ScaleParams) (*models.CorrectionScale, error) {
	scale := models.CorrectionScale{
		GreaterThan: p.GreaterThan,
		UnitsToAdd:  p.UnitsToAdd,
	}
	if err := s.db.WithContext(ctx).Create(&scale).Error; err != nil {
		return nil, err
	}
	return &scale, nil
}

// Update modifies a correction-scale row.
func (s *ScaleService) Update(ctx context.Context, id uuid.UUID, p ScaleParams) (*models.CorrectionScale, error) {
	var scale models.CorrectionScale
	if err := s.db.WithContext(ctx).First(&scale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	scale.GreaterThan = p.GreaterThan
	scale.UnitsToAdd = p.UnitsToAdd
	if err := s.db.WithContext(ctx).Save(&scale).Error; err != nil {
		return nil, err
	}
	return &scale, nil
}

// Delete removes a correction-scale row.
func (s *ScaleService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.CorrectionScale{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of rows ordered ascending by threshold.
func (s *ScaleService) List(ctx context.Context, page, pageSize int) ([]models.CorrectionScale, query.Page, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.CorrectionScale{}).Count(&total).Error; err != nil {
		return nil, query.Page{}, err
	}
	p := query.Paginate(total, page, pageSize)

	var scales []models.CorrectionScale
	err := s.db.WithContext(ctx).
		Order("greater_than ASC").
		Offset(p.Offset).
		Limit(p.Size).
		Find(&scales).Error
	if err != nil {
		return nil, query.Page{}, err
	}
	return scales, p, nil
}

// ListAll returns the whole table ordered ascending by threshold.
func (s *ScaleService) ListAll(ctx context.Context) ([]models.CorrectionScale, error) {
	var scales []models.CorrectionScale
	err := s.db.WithContext(ctx).Order("greater_than ASC").Find(&scales).Error
	return scales, err
}
