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

// GlucoseService handles blood glucose readings.
type GlucoseService struct {
	db *gorm.DB
}

func NewGlucoseService(db *gorm.DB) *GlucoseService {
	return &GlucoseService{db: db}
}

// GlucoseParams are the writable fields of a reading. LastModifiedByID, when
// set, is kept as-is; otherwise the acting user is stamped.
type GlucoseParams struct {
	OccurredAt       time.Time
	Value            decimal.Decimal
	Unit             string
	Notes            string
	LastModifiedByID *uuid.UUID
}

// Create stores a new reading attributed to the acting user.
func (s *GlucoseService) Create(ctx context.Context, actorID uuid.UUID, p GlucoseParams) (*models.GlucoseReading, error) {
	reading := models.GlucoseReading{
		OccurredAt:       p.OccurredAt,
		Value:            p.Value,
		Unit:             p.Unit,
		Notes:            p.Notes,
		LastModifiedByID: stamp(p.LastModifiedByID, actorID),
	}
	if err := s.db.WithContext(ctx).Create(&reading).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

// Update modifies a reading owned by the acting user. A reading that is
// absent or owned by someone else is reported as ErrNotFound.
func (s *GlucoseService) Update(ctx context.Context, actorID, id uuid.UUID, p GlucoseParams) (*models.GlucoseReading, error) {
	var reading models.GlucoseReading
	err := s.db.WithContext(ctx).
		Where("id = ? AND last_modified_by_id = ?", id, actorID).
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reading.OccurredAt = p.OccurredAt
	reading.Value = p.Value
	reading.Unit = p.Unit
	reading.Notes = p.Notes
	reading.LastModifiedByID = &actorID
	if err := s.db.WithContext(ctx).Save(&reading).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

// Get fetches one reading by id.
func (s *GlucoseService) Get(ctx context.Context, id uuid.UUID) (*models.GlucoseReading, error) {
	var reading models.GlucoseReading
	if err := s.db.WithContext(ctx).First(&reading, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reading, nil
}

// List returns one page of readings filtered to the given window.
func (s *GlucoseService) List(ctx context.Context, opts ListOptions) ([]models.GlucoseReading, query.Page, error) {
	db := applyRange(s.db.WithContext(ctx).Model(&models.GlucoseReading{}), opts.Range)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, query.Page{}, err
	}
	page := query.Paginate(total, opts.Page, opts.PageSize)

	var readings []models.GlucoseReading
	err := db.Order(occurredAtOrder(opts.Sort)).
		Offset(page.Offset).
		Limit(page.Size).
		Find(&readings).Error
	if err != nil {
		return nil, query.Page{}, err
	}
	return readings, page, nil
}

// Filtered returns all readings in the window without pagination, for export.
func (s *GlucoseService) Filtered(ctx context.Context, r query.Range, sort string) ([]models.GlucoseReading, error) {
	var readings []models.GlucoseReading
	err := applyRange(s.db.WithContext(ctx).Model(&models.GlucoseReading{}), r).
		Order(occurredAtOrder(sort)).
		Find(&readings).Error
	return readings, err
}

func stamp(explicit *uuid.UUID, actorID uuid.UUID) *uuid.UUID {
	if explicit != nil {
		return explicit
	}
	id := actorID
	return &id
}
