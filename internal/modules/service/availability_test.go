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
)

func newAvailabilityForTest(r *MockRelocationRepo) AvailabilityService {
	return NewAvailabilityService(r, nil, 8, 18)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRoomAvailability_FreeDayHasAllSlots(t *testing.T) {
	r := new(MockRelocationRepo)
	svc := newAvailabilityForTest(r)
	roomID := uuid.New()
	d := day("2026-03-02")

	r.On("ListSessionsByRoomAndDate", mock.Anything, roomID, d).Return([]model.CourtSession{}, nil)
	r.On("ListOpenWorkByRoomAndDate", mock.Anything, roomID, d).Return([]model.WorkAssignment{}, nil)

	out, err := svc.RoomAvailability(context.Background(), roomID, d, d)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.True(t, out[0].IsAvailable)
	// 08:00-18:00 in one-hour steps
	require.Len(t, out[0].AvailableSlots, 10)
	assert.Equal(t, "08:00", out[0].AvailableSlots[0].Start)
	assert.Equal(t, "09:00", out[0].AvailableSlots[0].End)
	assert.Equal(t, "17:00", out[0].AvailableSlots[9].Start)
	assert.Equal(t, "18:00", out[0].AvailableSlots[9].End)
}

func TestRoomAvailability_SessionBlocksOverlappingSlots(t *testing.T) {
	r := new(MockRelocationRepo)
	svc := newAvailabilityForTest(r)
	roomID := uuid.New()
	d := day("2026-03-02")

	// 09:30-11:15 knocks out the 09:00, 10:00 and 11:00 slots.
	r.On("ListSessionsByRoomAndDate", mock.Anything, roomID, d).Return([]model.CourtSession{
		{SessionDate: d, StartTime: "09:30", EndTime: "11:15"},
	}, nil)
	r.On("ListOpenWorkByRoomAndDate", mock.Anything, roomID, d).Return([]model.WorkAssignment{}, nil)

	out, err := svc.RoomAvailability(context.Background(), roomID, d, d)
	require.NoError(t, err)
	require.Len(t, out, 1)

	require.Len(t, out[0].AvailableSlots, 7)
	for _, slot := range out[0].AvailableSlots {
		assert.NotEqual(t, "09:00", slot.Start)
		assert.NotEqual(t, "10:00", slot.Start)
		assert.NotEqual(t, "11:00", slot.Start)
	}
	assert.True(t, out[0].IsAvailable)
}

func TestRoomAvailability_BackToBackEventsDoNotDoubleBlock(t *testing.T) {
	r := new(MockRelocationRepo)
	svc := newAvailabilityForTest(r)
	roomID := uuid.New()
	d := day("2026-03-02")

	// Session ends exactly where the 12:00 slot starts; shared boundary
	// does not count as overlap.
	r.On("ListSessionsByRoomAndDate", mock.Anything, roomID, d).Return([]model.CourtSession{
		{SessionDate: d, StartTime: "09:00", EndTime: "12:00"},
	}, nil)
	r.On("ListOpenWorkByRoomAndDate", mock.Anything, roomID, d).Return([]model.WorkAssignment{
		{WorkDate: d, StartTime: "12:00", EndTime: "13:00"},
	}, nil)

	out, err := svc.RoomAvailability(context.Background(), roomID, d, d)
	require.NoError(t, err)

	starts := make(map[string]bool)
	for _, slot := range out[0].AvailableSlots {
		starts[slot.Start] = true
	}
	assert.False(t, starts["09:00"])
	assert.False(t, starts["12:00"])
	assert.True(t, starts["08:00"])
	assert.True(t, starts["13:00"])
}

func TestRoomAvailability_FullyBlockedDay(t *testing.T) {
	r := new(MockRelocationRepo)
	svc := newAvailabilityForTest(r)
	roomID := uuid.New()
	d := day("2026-03-02")

	r.On("ListSessionsByRoomAndDate", mock.Anything, roomID, d).Return([]model.CourtSession{
		{SessionDate: d, StartTime: "08:00", EndTime: "18:00"},
	}, nil)
	r.On("ListOpenWorkByRoomAndDate", mock.Anything, roomID, d).Return([]model.WorkAssignment{}, nil)

	out, err := svc.RoomAvailability(context.Background(), roomID, d, d)
	require.NoError(t, err)
	assert.False(t, out[0].IsAvailable)
	assert.Empty(t, out[0].AvailableSlots)
}

func TestRoomAvailability_RangeValidation(t *testing.T) {
	svc := newAvailabilityForTest(new(MockRelocationRepo))
	roomID := uuid.New()

	_, err := svc.RoomAvailability(context.Background(), roomID, day("2026-03-02"), day("2026-03-01"))
	assert.ErrorIs(t, err, ErrBadDateRange)

	_, err = svc.RoomAvailability(context.Background(), roomID, day("2026-01-01"), day("2026-12-31"))
	assert.ErrorIs(t, err, ErrDateRangeTooWide)
}

func TestRoomConflicts_WorkOverlappingSession(t *testing.T) {
	r := new(MockRelocationRepo)
	svc := newAvailabilityForTest(r)
	roomID := uuid.New()
	d1 := day("2026-03-02")
	d2 := day("2026-03-03")

	r.On("ListSessionsByRoomAndDate", mock.Anything, roomID, d1).Return([]model.CourtSession{
		{SessionDate: d1, StartTime: "09:00", EndTime: "12:00", SessionType: "trial"},
	}, nil)
	r.On("ListOpenWorkByRoomAndDate", mock.Anything, roomID, d1).Return([]model.WorkAssignment{
		{WorkDate: d1, StartTime: "11:00", EndTime: "13:00", Task: "lighting"},
		{WorkDate: d1, StartTime: "14:00", EndTime: "15:00", Task: "painting"},
	}, nil)
	r.On("ListSessionsByRoomAndDate", mock.Anything, roomID, d2).Return([]model.CourtSession{}, nil)

	conflicts, err := svc.RoomConflicts(context.Background(), roomID, d1, d2)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "lighting", conflicts[0].WorkAssignment.Task)
	assert.Equal(t, "2026-03-02", conflicts[0].Date)

	// Day without sessions never queries work rows.
	r.AssertNotCalled(t, "ListOpenWorkByRoomAndDate", mock.Anything, roomID, d2)
}
