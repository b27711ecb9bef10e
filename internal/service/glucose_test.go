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
	"github.com/bradleyburgess/diabeateeze/internal/query"
)

func TestGlucoseCreateStampsActor(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewGlucoseService(db)

	reading, err := svc.Create(context.Background(), userID, GlucoseParams{
		OccurredAt: time.Now(),
		Value:      decimal.RequireFromString("5.6"),
		Unit:       models.UnitMmolL,
	})
	require.NoError(t, err)
	require.NotNil(t, reading.LastModifiedByID)
	assert.Equal(t, userID, *reading.LastModifiedByID)
}

func TestGlucoseCreateKeepsExplicitAttribution(t *testing.T) {
	db := newTestDB(t)
	actorID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	svc := NewGlucoseService(db)

	reading, err := svc.Create(context.Background(), actorID, GlucoseParams{
		OccurredAt:       time.Now(),
		Value:            decimal.RequireFromString("6.1"),
		Unit:             models.UnitMmolL,
		LastModifiedByID: &otherID,
	})
	require.NoError(t, err)
	assert.Equal(t, otherID, *reading.LastModifiedByID)
}

func TestGlucoseUpdatePreservesCreatedAt(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewGlucoseService(db)

	reading, err := svc.Create(context.Background(), userID, GlucoseParams{
		OccurredAt: time.Now(),
		Value:      decimal.RequireFromString("5.6"),
		Unit:       models.UnitMmolL,
	})
	require.NoError(t, err)
	created := reading.CreatedAt

	time.Sleep(20 * time.Millisecond)

	updated, err := svc.Update(context.Background(), userID, reading.ID, GlucoseParams{
		OccurredAt: reading.OccurredAt,
		Value:      decimal.RequireFromString("6.4"),
		Unit:       models.UnitMmolL,
		Notes:      "corrected",
	})
	require.NoError(t, err)

	assert.True(t, updated.CreatedAt.Equal(created), "creation timestamp must survive edits")
	assert.True(t, updated.UpdatedAt.After(created), "update timestamp must advance")
	assert.True(t, updated.Value.Equal(decimal.RequireFromString("6.4")))
}

func TestGlucoseUpdateByNonOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ownerID := createTestUser(t, db)
	intruderID := createTestUser(t, db)
	svc := NewGlucoseService(db)

	reading, err := svc.Create(context.Background(), ownerID, GlucoseParams{
		OccurredAt: time.Now(),
		Value:      decimal.RequireFromString("5.6"),
		Unit:       models.UnitMmolL,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), intruderID, reading.ID, GlucoseParams{
		OccurredAt: time.Now(),
		Value:      decimal.RequireFromString("9.9"),
		Unit:       models.UnitMmolL,
	})
	assert.True(t, errors.Is(err, ErrNotFound), "foreign records must look like missing records")

	// The record is untouched.
	current, err := svc.Get(context.Background(), reading.ID)
	require.NoError(t, err)
	assert.True(t, current.Value.Equal(decimal.RequireFromString("5.6")))
}

func TestGlucoseListFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewGlucoseService(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, userID, GlucoseParams{
			OccurredAt: base.AddDate(0, 0, -i),
			Value:      decimal.RequireFromString("5.0"),
			Unit:       models.UnitMmolL,
		})
		require.NoError(t, err)
	}

	start := base.AddDate(0, 0, -9)
	readings, page, err := svc.List(ctx, ListOptions{
		Range:    query.Range{Start: &start},
		Sort:     query.SortDesc,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)

	assert.Len(t, readings, 10)
	assert.Equal(t, int64(10), page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	for _, r := range readings {
		assert.False(t, r.OccurredAt.Before(start))
	}
}

func TestGlucoseListSortAscending(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	svc := NewGlucoseService(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	for _, offset := range []int{2, 0, 1} {
		_, err := svc.Create(ctx, userID, GlucoseParams{
			OccurredAt: base.AddDate(0, 0, offset),
			Value:      decimal.RequireFromString("5.0"),
			Unit:       models.UnitMmolL,
		})
		require.NoError(t, err)
	}

	readings, _, err := svc.List(ctx, ListOptions{Sort: query.SortAsc, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, readings, 3)
	for i := 1; i < len(readings); i++ {
		assert.True(t, readings[i].OccurredAt.After(readings[i-1].OccurredAt))
	}
}
