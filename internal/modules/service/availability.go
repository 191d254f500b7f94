package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/cache"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"github.com/youngpro718/nysc-facilities-sub003/internal/pkg/interval"
)

var (
	ErrBadDateRange     = errors.New("end date must not precede start date")
	ErrDateRangeTooWide = errors.New("date range exceeds the supported window")
)

// maxAvailabilityDays bounds the brute-force day x slot x event scan.
const maxAvailabilityDays = 62

// DayAvailability is one calendar day of a room's availability, with
// the raw blackout events attached for display.
type DayAvailability struct {
	Date            string                 `json:"date"`
	RoomID          uuid.UUID              `json:"room_id"`
	IsAvailable     bool                   `json:"is_available"`
	AvailableSlots  []interval.Span        `json:"available_slots"`
	CourtSessions   []model.CourtSession   `json:"court_sessions"`
	WorkAssignments []model.WorkAssignment `json:"work_assignments"`
}

// WorkSessionConflict is a work assignment overlapping a court session
// on the same day. Rendered as a warning; never blocks creation.
type WorkSessionConflict struct {
	Date           string               `json:"date"`
	WorkAssignment model.WorkAssignment `json:"work_assignment"`
	CourtSession   model.CourtSession   `json:"court_session"`
}

type AvailabilityService interface {
	RoomAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DayAvailability, error)
	RoomConflicts(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]WorkSessionConflict, error)
}

type availabilityService struct {
	r            repo.RelocationRepo
	qc           *cache.QueryCache
	dayStartHour int
	dayEndHour   int
}

func NewAvailabilityService(r repo.RelocationRepo, qc *cache.QueryCache, dayStartHour, dayEndHour int) AvailabilityService {
	if dayEndHour <= dayStartHour {
		dayStartHour, dayEndHour = 8, 18
	}
	return &availabilityService{r: r, qc: qc, dayStartHour: dayStartHour, dayEndHour: dayEndHour}
}

func checkRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrBadDateRange
	}
	if end.Sub(start) > maxAvailabilityDays*24*time.Hour {
		return ErrDateRangeTooWide
	}
	return nil
}

func (s *availabilityService) RoomAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DayAvailability, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	group := availabilityCacheGroup(roomID)
	params := fmt.Sprintf("%s|%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	var cached []DayAvailability
	if s.qc.Get(ctx, group, params, &cached) {
		return cached, nil
	}

	slots := interval.HourlySlots(s.dayStartHour, s.dayEndHour)
	var out []DayAvailability

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		sessions, err := s.r.ListSessionsByRoomAndDate(ctx, roomID, day)
		if err != nil {
			return nil, err
		}
		work, err := s.r.ListOpenWorkByRoomAndDate(ctx, roomID, day)
		if err != nil {
			return nil, err
		}

		busy := make([]interval.Span, 0, len(sessions)+len(work))
		for _, cs := range sessions {
			busy = append(busy, interval.Span{Start: cs.StartTime, End: cs.EndTime})
		}
		for _, w := range work {
			busy = append(busy, interval.Span{Start: w.StartTime, End: w.EndTime})
		}

		free := make([]interval.Span, 0, len(slots))
		for _, slot := range slots {
			blocked := false
			for _, b := range busy {
				if slot.Overlaps(b) {
					blocked = true
					break
				}
			}
			if !blocked {
				free = append(free, slot)
			}
		}

		out = append(out, DayAvailability{
			Date:            day.Format("2006-01-02"),
			RoomID:          roomID,
			IsAvailable:     len(free) > 0,
			AvailableSlots:  free,
			CourtSessions:   sessions,
			WorkAssignments: work,
		})
	}

	s.qc.Set(ctx, group, params, out)
	return out, nil
}

func (s *availabilityService) RoomConflicts(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]WorkSessionConflict, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	var conflicts []WorkSessionConflict
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		sessions, err := s.r.ListSessionsByRoomAndDate(ctx, roomID, day)
		if err != nil {
			return nil, err
		}
		if len(sessions) == 0 {
			continue
		}
		work, err := s.r.ListOpenWorkByRoomAndDate(ctx, roomID, day)
		if err != nil {
			return nil, err
		}

		for _, w := range work {
			ws := interval.Span{Start: w.StartTime, End: w.EndTime}
			for _, cs := range sessions {
				if ws.Overlaps(interval.Span{Start: cs.StartTime, End: cs.EndTime}) {
					conflicts = append(conflicts, WorkSessionConflict{
						Date:           day.Format("2006-01-02"),
						WorkAssignment: w,
						CourtSession:   cs,
					})
				}
			}
		}
	}
	return conflicts, nil
}
