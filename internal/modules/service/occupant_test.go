package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/pkg/paging"
)

func TestOccupantCreate_DefaultsAndValidation(t *testing.T) {
	r := new(MockOccupantRepo)
	svc := NewOccupantService(r)

	r.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Occupant) bool {
		return o.Status == model.OccupantStatusActive && o.AccessLevel == model.AccessLevelStandard
	})).Return(nil)

	err := svc.Create(context.Background(), &model.Occupant{FirstName: "Dana", LastName: "Reyes"})
	require.NoError(t, err)

	err = svc.Create(context.Background(), &model.Occupant{FirstName: "Bo", LastName: "Vang", Status: "retired"})
	assert.ErrorIs(t, err, ErrInvalidOccupantStatus)
}

func TestOccupantList_CursorPagination(t *testing.T) {
	r := new(MockOccupantRepo)
	svc := NewOccupantService(r)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	page := make([]*model.Occupant, 3)
	for i := range page {
		page[i] = &model.Occupant{ID: uuid.New(), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}

	// limit 2, repo asked for limit+1 and returns 3 rows: has_more.
	r.On("ListWithCursor", mock.Anything, time.Time{}, uuid.Nil, 3, false).Return(page, nil)

	out, err := svc.List(context.Background(), ListOccupantsInput{Limit: 2})
	require.NoError(t, err)

	assert.True(t, out.HasMore)
	require.Len(t, out.Items, 2)
	require.NotEmpty(t, out.NextCursor)

	at, id, err := paging.DecodeCursor(out.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, page[1].ID, id)
	assert.True(t, at.Equal(page[1].CreatedAt))
}

func TestOccupantList_LastPage(t *testing.T) {
	r := new(MockOccupantRepo)
	svc := NewOccupantService(r)

	r.On("ListWithCursor", mock.Anything, time.Time{}, uuid.Nil, 3, false).
		Return([]*model.Occupant{{ID: uuid.New()}}, nil)

	out, err := svc.List(context.Background(), ListOccupantsInput{Limit: 2})
	require.NoError(t, err)
	assert.False(t, out.HasMore)
	assert.Empty(t, out.NextCursor)
	assert.Len(t, out.Items, 1)
}

func TestOccupantList_BadCursor(t *testing.T) {
	svc := NewOccupantService(new(MockOccupantRepo))

	_, err := svc.List(context.Background(), ListOccupantsInput{Limit: 2, Cursor: "not-a-cursor"})
	assert.ErrorIs(t, err, paging.ErrBadCursor)
}

func TestBulkUpdateStatus(t *testing.T) {
	r := new(MockOccupantRepo)
	svc := NewOccupantService(r)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	r.On("BulkUpdateStatus", mock.Anything, ids, model.OccupantStatusInactive).Return(int64(2), nil)

	n, err := svc.BulkUpdateStatus(context.Background(), ids, model.OccupantStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.BulkUpdateStatus(context.Background(), ids, "gone")
	assert.ErrorIs(t, err, ErrInvalidOccupantStatus)

	n, err = svc.BulkUpdateStatus(context.Background(), nil, model.OccupantStatusInactive)
	require.NoError(t, err)
	assert.Zero(t, n)
}
