package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/models"
	"github.com/bradleyburgess/diabeateeze/internal/query"
)

// Entry kinds in the combined activity feed.
const (
	KindGlucose = "glucose"
	KindInsulin = "insulin"
	KindMeal    = "meal"
)

// Entry is one record in the combined feed, tagged with its kind. Exactly
// one of Glucose, Dose or Meal is set.
type Entry struct {
	Kind       string                 `json:"kind"`
	ID         uuid.UUID              `json:"id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Glucose    *models.GlucoseReading `json:"glucose,omitempty"`
	Dose       *models.InsulinDose    `json:"insulin,omitempty"`
	Meal       *models.Meal           `json:"meal,omitempty"`
}

// ActivityService unions glucose readings, insulin doses and meals into one
// chronological feed.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Records returns the three filtered record sets the feed is built from.
func (s *ActivityService) Records(ctx context.Context, r query.Range) ([]models.GlucoseReading, []models.InsulinDose, []models.Meal, error) {
	var readings []models.GlucoseReading
	if err := applyRange(s.db.WithContext(ctx).Model(&models.GlucoseReading{}), r).
		Order("occurred_at DESC").Find(&readings).Error; err != nil {
		return nil, nil, nil, err
	}

	var doses []models.InsulinDose
	if err := applyRange(s.db.WithContext(ctx).Model(&models.InsulinDose{}), r).
		Preload("InsulinType").
		Order("occurred_at DESC").Find(&doses).Error; err != nil {
		return nil, nil, nil, err
	}

	var meals []models.Meal
	if err := applyRange(s.db.WithContext(ctx).Model(&models.Meal{}), r).
		Order("occurred_at DESC").Find(&meals).Error; err != nil {
		return nil, nil, nil, err
	}

	return readings, doses, meals, nil
}

// Feed returns one page of the combined feed, newest first. Records sharing
// an occurrence instant are ordered by kind name, then id, so the ordering
// is deterministic rather than an accident of concatenation order.
func (s *ActivityService) Feed(ctx context.Context, r query.Range, page, pageSize int) ([]Entry, query.Page, error) {
	readings, doses, meals, err := s.Records(ctx, r)
	if err != nil {
		return nil, query.Page{}, err
	}

	entries := mergeEntries(readings, doses, meals)
	p := query.Paginate(int64(len(entries)), page, pageSize)

	start := p.Offset
	if start > len(entries) {
		start = len(entries)
	}
	end := start + p.Size
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end], p, nil
}

// Recent returns the n newest combined entries for the dashboard.
func (s *ActivityService) Recent(ctx context.Context, n int) ([]Entry, error) {
	entries, _, err := s.Feed(ctx, query.Range{}, 1, n)
	return entries, err
}

func mergeEntries(readings []models.GlucoseReading, doses []models.InsulinDose, meals []models.Meal) []Entry {
	entries := make([]Entry, 0, len(readings)+len(doses)+len(meals))
	for i := range readings {
		r := &readings[i]
		entries = append(entries, Entry{Kind: KindGlucose, ID: r.ID, OccurredAt: r.OccurredAt, Glucose: r})
	}
	for i := range doses {
		d := &doses[i]
		entries = append(entries, Entry{Kind: KindInsulin, ID: d.ID, OccurredAt: d.OccurredAt, Dose: d})
	}
	for i := range meals {
		m := &meals[i]
		entries = append(entries, Entry{Kind: KindMeal, ID: m.ID, OccurredAt: m.OccurredAt, Meal: m})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.After(b.OccurredAt)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ID.String() < b.ID.String()
	})
	return entries
}
