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

// InsulinService handles insulin types, doses and schedules.
type InsulinService struct {
	db *gorm.DB
}

func NewInsulinService(db *gorm.DB) *InsulinService {
	return &InsulinService{db: db}
}

// InsulinTypeParams are the writable fields of an insulin type.
type InsulinTypeParams struct {
	Name             string
	Category         string
	Notes            string
	IsDefault        bool
	LastModifiedByID *uuid.UUID
}

// CreateType stores a new insulin type. When IsDefault is set, every other
// type's default flag is cleared in the same transaction so at most one
// default exists at any point.
func (s *InsulinService) CreateType(ctx context.Context, actorID uuid.UUID, p InsulinTypeParams) (*models.InsulinType, error) {
	t := models.InsulinType{
		Name:             p.Name,
		Category:         p.Category,
		Notes:            p.Notes,
		IsDefault:        p.IsDefault,
		LastModifiedByID: stamp(p.LastModifiedByID, actorID),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.IsDefault {
			if err := clearOtherDefaults(tx, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		return nil, translateTypeError(err)
	}
	return &t, nil
}

// UpdateType modifies an insulin type, keeping the single-default invariant.
func (s *InsulinService) UpdateType(ctx context.Context, actorID, id uuid.UUID, p InsulinTypeParams) (*models.InsulinType, error) {
	var t models.InsulinType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		t.Name = p.Name
		t.Category = p.Category
		t.Notes = p.Notes
		t.IsDefault = p.IsDefault
		t.LastModifiedByID = &actorID
		if t.IsDefault {
			if err := clearOtherDefaults(tx, t.ID); err != nil {
				return err
			}
		}
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, translateTypeError(err)
	}
	return &t, nil
}

// DeleteType removes an insulin type and its cascading schedules. Deletion
// is rejected while doses still reference the type.
func (s *InsulinService) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doses int64
		if err := tx.Model(&models.InsulinDose{}).Where("insulin_type_id = ?", id).Count(&doses).Error; err != nil {
			return err
		}
		if doses > 0 {
			return ErrInsulinTypeInUse
		}
		if err := tx.Where("insulin_type_id = ?", id).Delete(&models.InsulinSchedule{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.InsulinType{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListTypes returns all insulin types ordered by name.
func (s *InsulinService) ListTypes(ctx context.Context) ([]models.InsulinType, error) {
	var ts []models.InsulinType
	err := s.db.WithContext(ctx).Order("name ASC").Find(&ts).Error
	return ts, err
}

// DefaultType returns the type flagged as default, or nil when none is set.
func (s *InsulinService) DefaultType(ctx context.Context) (*models.InsulinType, error) {
	var t models.InsulinType
	err := s.db.WithContext(ctx).Where("is_default = ?", true).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func clearOtherDefaults(tx *gorm.DB, exceptID uuid.UUID) error {
	return tx.Model(&models.InsulinType{}).
		Where("is_default = ? AND id <> ?", true, exceptID).
		Update("is_default", false).Error
}

func translateTypeError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}

// DoseParams are the writable fields of an insulin dose.
type DoseParams struct {
	OccurredAt       time.Time
	BaseUnits        decimal.Decimal
	CorrectionUnits  decimal.Decimal
	InsulinTypeID    uuid.UUID
	Notes            string
	LastModifiedByID *uuid.UUID
}

// CreateDose stores a new dose attributed to the acting user.
func (s *InsulinService) CreateDose(ctx context.Context, actorID uuid.UUID, p DoseParams) (*models.InsulinDose, error) {
	var t models.InsulinType
	if err := s.db.WithContext(ctx).First(&t, "id = ?", p.InsulinTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dose := models.InsulinDose{
		OccurredAt:       p.OccurredAt,
		BaseUnits:        p.BaseUnits,
		CorrectionUnits:  p.CorrectionUnits,
		InsulinTypeID:    p.InsulinTypeID,
		Notes:            p.Notes,
		LastModifiedByID: stamp(p.LastModifiedByID, actorID),
	}
	if err := s.db.WithContext(ctx).Create(&dose).Error; err != nil {
		return nil, err
	}
	dose.InsulinType = &t
	return &dose, nil
}

// UpdateDose modifies a dose owned by the acting user; absent or foreign
// doses are ErrNotFound.
func (s *InsulinService) UpdateDose(ctx context.Context, actorID, id uuid.UUID, p DoseParams) (*models.InsulinDose, error) {
	var dose models.InsulinDose
	err := s.db.WithContext(ctx).
		Where("id = ? AND last_modified_by_id = ?", id, actorID).
		First(&dose).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dose.OccurredAt = p.OccurredAt
	dose.BaseUnits = p.BaseUnits
	dose.CorrectionUnits = p.CorrectionUnits
	dose.InsulinTypeID = p.InsulinTypeID
	dose.Notes = p.Notes
	dose.LastModifiedByID = &actorID
	if err := s.db.WithContext(ctx).Save(&dose).Error; err != nil {
		return nil, err
	}
	return &dose, nil
}

// ListDoses returns one page of doses with their types preloaded.
func (s *InsulinService) ListDoses(ctx context.Context, opts ListOptions) ([]models.InsulinDose, query.Page, error) {
	db := applyRange(s.db.WithContext(ctx).Model(&models.InsulinDose{}), opts.Range)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, query.Page{}, err
	}
	page := query.Paginate(total, opts.Page, opts.PageSize)

	var doses []models.InsulinDose
	err := db.Preload("InsulinType").
		Order(occurredAtOrder(opts.Sort)).
		Offset(page.Offset).
		Limit(page.Size).
		Find(&doses).Error
	if err != nil {
		return nil, query.Page{}, err
	}
	return doses, page, nil
}

// FilteredDoses returns all doses in the window without pagination, for export.
func (s *InsulinService) FilteredDoses(ctx context.Context, r query.Range, sort string) ([]models.InsulinDose, error) {
	var doses []models.InsulinDose
	err := applyRange(s.db.WithContext(ctx).Model(&models.InsulinDose{}), r).
		Preload("InsulinType").
		Order(occurredAtOrder(sort)).
		Find(&doses).Error
	return doses, err
}

// ScheduleParams are the writable fields of an insulin schedule.
type ScheduleParams struct {
	Label            string
	TimeOfDay        string
	InsulinTypeID    uuid.UUID
	Units            decimal.Decimal
	Notes            string
	LastModifiedByID *uuid.UUID
}

// CreateSchedule stores a new scheduled dose.
func (s *InsulinService) CreateSchedule(ctx context.Context, actorID uuid.UUID, p ScheduleParams) (*models.InsulinSchedule, error) {
	sched := models.InsulinSchedule{
		Label:            p.Label,
		TimeOfDay:        p.TimeOfDay,
		InsulinTypeID:    p.InsulinTypeID,
		Units:            p.Units,
		Notes:            p.Notes,
		LastModifiedByID: stamp(p.LastModifiedByID, actorID),
	}
	if err := s.db.WithContext(ctx).Create(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

// UpdateSchedule modifies a schedule. Schedules are shared reference data,
// so any authenticated user may edit them.
func (s *InsulinService) UpdateSchedule(ctx context.Context, actorID, id uuid.UUID, p ScheduleParams) (*models.InsulinSchedule, error) {
	var sched models.InsulinSchedule
	if err := s.db.WithContext(ctx).First(&sched, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sched.Label = p.Label
	sched.TimeOfDay = p.TimeOfDay
	sched.InsulinTypeID = p.InsulinTypeID
	sched.Units = p.Units
	sched.Notes = p.Notes
	sched.LastModifiedByID = &actorID
	if err := s.db.WithContext(ctx).Save(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

// DeleteSchedule removes a schedule.
func (s *InsulinService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.InsulinSchedule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSchedules returns all schedules ordered by time of day.
func (s *InsulinService) ListSchedules(ctx context.Context) ([]models.InsulinSchedule, error) {
	var scheds []models.InsulinSchedule
	err := s.db.WithContext(ctx).
		Preload("InsulinType").
		Order("time_of_day ASC").
		Find(&scheds).Error
	return scheds, err
}
