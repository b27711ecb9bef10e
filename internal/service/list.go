package service

import (
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/query"
)

// ListOptions carry the shared list-view parameters: an occurred_at window,
// sort direction and 1-based pagination.
type ListOptions struct {
	Range    query.Range
	Sort     string
	Page     int
	PageSize int
}

func applyRange(db *gorm.DB, r query.Range) *gorm.DB {
	if r.Start != nil {
		db = db.Where("occurred_at >= ?", *r.Start)
	}
	if r.End != nil {
		db = db.Where("occurred_at <= ?", *r.End)
	}
	return db
}

func occurredAtOrder(sort string) string {
	if query.NormalizeSort(sort) == query.SortAsc {
		return "occurred_at ASC"
	}
	return "occurred_at DESC"
}
