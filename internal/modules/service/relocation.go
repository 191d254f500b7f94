package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/cache"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"go.uber.org/zap"
)

var (
	ErrIllegalTransition       = errors.New("relocation is not in a state that allows this transition")
	ErrSameRoom                = errors.New("original and temporary room must differ")
	ErrCompletionNotesRequired = errors.New("completion notes are required")
	ErrBadTimeRange            = errors.New("end time must be after start time")
)

// Allowed relocation transitions; completed and cancelled are terminal.
var relocationTransitions = map[string][]string{
	model.RelocationStatusActive:    {model.RelocationStatusScheduled},
	model.RelocationStatusCompleted: {model.RelocationStatusActive},
	model.RelocationStatusCancelled: {model.RelocationStatusScheduled, model.RelocationStatusActive},
}

type ScheduleChangeInput struct {
	OriginalCourtPart   string `json:"original_court_part" binding:"required"`
	TemporaryAssignment string `json:"temporary_assignment" binding:"required"`
}

type CreateRelocationInput struct {
	OriginalRoomID  uuid.UUID
	TemporaryRoomID uuid.UUID
	StartDate       time.Time
	EndDate         *time.Time
	RelocationType  string
	Reason          *string
	TermID          *uuid.UUID
	ScheduleChanges []ScheduleChangeInput
}

type WorkAssignmentInput struct {
	RelocationID uuid.UUID
	Task         string
	Worker       *string
	Crew         *string
	WorkDate     time.Time
	StartTime    string
	EndTime      string
}

type CourtSessionInput struct {
	RelocationID uuid.UUID
	SessionDate  time.Time
	StartTime    string
	EndTime      string
	SessionType  string
	Judge        *string
	Notes        *string
}

type RelocationService interface {
	Create(ctx context.Context, in CreateRelocationInput) (*model.RoomRelocation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error)
	List(ctx context.Context, status string, limit, offset int) ([]*model.RoomRelocation, int64, error)

	Activate(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error)
	Complete(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error)

	AddWorkAssignment(ctx context.Context, in WorkAssignmentInput) (*model.WorkAssignment, error)
	StartWork(ctx context.Context, workID uuid.UUID) (*model.WorkAssignment, error)
	CompleteWork(ctx context.Context, workID uuid.UUID, completionNotes string) (*model.WorkAssignment, error)
	CancelWork(ctx context.Context, workID uuid.UUID) (*model.WorkAssignment, error)

	AddCourtSession(ctx context.Context, in CourtSessionInput) (*model.CourtSession, error)
	DeleteCourtSession(ctx context.Context, relocationID, sessionID uuid.UUID) error
}

type relocationService struct {
	r        repo.RelocationRepo
	qc       *cache.QueryCache
	notifier Notifier
	log      *zap.Logger
}

func NewRelocationService(r repo.RelocationRepo, qc *cache.QueryCache, notifier Notifier, log *zap.Logger) RelocationService {
	return &relocationService{r: r, qc: qc, notifier: notifier, log: log}
}

func validSpan(start, end string) error {
	if start == "" || end == "" || end <= start {
		return ErrBadTimeRange
	}
	return nil
}

func (s *relocationService) invalidateAvailability(ctx context.Context, roomID uuid.UUID) {
	s.qc.Invalidate(ctx, availabilityCacheGroup(roomID))
}

func (s *relocationService) Create(ctx context.Context, in CreateRelocationInput) (*model.RoomRelocation, error) {
	if in.OriginalRoomID == in.TemporaryRoomID {
		return nil, ErrSameRoom
	}
	if in.RelocationType == "" {
		in.RelocationType = model.RelocationTypeMaintenance
	}

	rel := &model.RoomRelocation{
		OriginalRoomID:  in.OriginalRoomID,
		TemporaryRoomID: in.TemporaryRoomID,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Status:          model.RelocationStatusScheduled,
		RelocationType:  in.RelocationType,
		Reason:          in.Reason,
		TermID:          in.TermID,
	}
	for _, sc := range in.ScheduleChanges {
		rel.ScheduleChanges = append(rel.ScheduleChanges, model.ScheduleChange{
			OriginalCourtPart:   sc.OriginalCourtPart,
			TemporaryAssignment: sc.TemporaryAssignment,
			Status:              model.ScheduleChangeStatusScheduled,
			StartDate:           in.StartDate,
		})
	}

	if err := s.r.Create(ctx, rel); err != nil {
		return nil, err
	}
	for i := range rel.ScheduleChanges {
		s.notifier.ScheduleChangeRecorded(ctx, &rel.ScheduleChanges[i])
	}
	s.invalidateAvailability(ctx, rel.TemporaryRoomID)
	return rel, nil
}

func (s *relocationService) GetByID(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error) {
	if id == uuid.Nil {
		return nil, errors.New("relocation id is empty")
	}
	return s.r.Get(ctx, id)
}

func (s *relocationService) List(ctx context.Context, status string, limit, offset int) ([]*model.RoomRelocation, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.r.List(ctx, status, limit, offset)
}

func (s *relocationService) transition(ctx context.Context, id uuid.UUID, spec repo.CascadeSpec) (*model.RoomRelocation, error) {
	rel, err := s.r.Transition(ctx, id, spec)
	if err != nil {
		if errors.Is(err, repo.ErrStatusConflict) {
			return nil, ErrIllegalTransition
		}
		return nil, err
	}

	from := spec.ParentFrom[0]
	if len(spec.ParentFrom) > 1 {
		from = strings.Join(spec.ParentFrom, "|")
	}
	s.log.Sugar().Infow("relocation transitioned",
		"relocation_id", id, "from", from, "to", rel.Status)
	s.notifier.RelocationStatusChanged(ctx, rel, from)
	s.invalidateAvailability(ctx, rel.TemporaryRoomID)
	return rel, nil
}

func (s *relocationService) Activate(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error) {
	return s.transition(ctx, id, repo.CascadeSpec{
		ParentFrom: relocationTransitions[model.RelocationStatusActive],
		ParentTo:   model.RelocationStatusActive,
		ChildFrom:  []string{model.ScheduleChangeStatusScheduled},
		ChildTo:    model.ScheduleChangeStatusActive,
	})
}

func (s *relocationService) Complete(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error) {
	return s.transition(ctx, id, repo.CascadeSpec{
		ParentFrom:    relocationTransitions[model.RelocationStatusCompleted],
		ParentTo:      model.RelocationStatusCompleted,
		ChildFrom:     []string{model.ScheduleChangeStatusActive},
		ChildTo:       model.ScheduleChangeStatusCompleted,
		StampActual:   true,
		StampChildEnd: true,
	})
}

func (s *relocationService) Cancel(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error) {
	return s.transition(ctx, id, repo.CascadeSpec{
		ParentFrom: relocationTransitions[model.RelocationStatusCancelled],
		ParentTo:   model.RelocationStatusCancelled,
		ChildFrom:  []string{model.ScheduleChangeStatusScheduled, model.ScheduleChangeStatusActive},
		ChildTo:    model.ScheduleChangeStatusCancelled,
	})
}

func (s *relocationService) AddWorkAssignment(ctx context.Context, in WorkAssignmentInput) (*model.WorkAssignment, error) {
	if err := validSpan(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	rel, err := s.r.Get(ctx, in.RelocationID)
	if err != nil {
		return nil, err
	}

	w := &model.WorkAssignment{
		RelocationID: in.RelocationID,
		Task:         in.Task,
		Worker:       in.Worker,
		Crew:         in.Crew,
		WorkDate:     in.WorkDate,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Status:       model.WorkStatusScheduled,
	}
	if err := s.r.CreateWork(ctx, w); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, rel.TemporaryRoomID)
	return w, nil
}

func (s *relocationService) workTransition(ctx context.Context, workID uuid.UUID, from []string, to string, notes *string) (*model.WorkAssignment, error) {
	w, err := s.r.UpdateWorkStatus(ctx, workID, from, to, notes)
	if err != nil {
		if errors.Is(err, repo.ErrStatusConflict) {
			return nil, ErrIllegalTransition
		}
		return nil, err
	}
	if rel, relErr := s.r.Get(ctx, w.RelocationID); relErr == nil {
		s.invalidateAvailability(ctx, rel.TemporaryRoomID)
	}
	return w, nil
}

func (s *relocationService) StartWork(ctx context.Context, workID uuid.UUID) (*model.WorkAssignment, error) {
	return s.workTransition(ctx, workID,
		[]string{model.WorkStatusScheduled}, model.WorkStatusInProgress, nil)
}

func (s *relocationService) CompleteWork(ctx context.Context, workID uuid.UUID, completionNotes string) (*model.WorkAssignment, error) {
	notes := strings.TrimSpace(completionNotes)
	if notes == "" {
		return nil, ErrCompletionNotesRequired
	}
	// Completion requires the work to have been started; scheduled work
	// can only be cancelled.
	return s.workTransition(ctx, workID,
		[]string{model.WorkStatusInProgress}, model.WorkStatusCompleted, &notes)
}

func (s *relocationService) CancelWork(ctx context.Context, workID uuid.UUID) (*model.WorkAssignment, error) {
	return s.workTransition(ctx, workID,
		[]string{model.WorkStatusScheduled, model.WorkStatusInProgress}, model.WorkStatusCancelled, nil)
}

func (s *relocationService) AddCourtSession(ctx context.Context, in CourtSessionInput) (*model.CourtSession, error) {
	if err := validSpan(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	rel, err := s.r.Get(ctx, in.RelocationID)
	if err != nil {
		return nil, err
	}
	if in.SessionType == "" {
		in.SessionType = "session"
	}

	cs := &model.CourtSession{
		RelocationID: in.RelocationID,
		SessionDate:  in.SessionDate,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		SessionType:  in.SessionType,
		Judge:        in.Judge,
		Notes:        in.Notes,
	}
	if err := s.r.CreateSession(ctx, cs); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, rel.TemporaryRoomID)
	return cs, nil
}

func (s *relocationService) DeleteCourtSession(ctx context.Context, relocationID, sessionID uuid.UUID) error {
	rel, err := s.r.Get(ctx, relocationID)
	if err != nil {
		return err
	}
	if err := s.r.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, rel.TemporaryRoomID)
	return nil
}

func availabilityCacheGroup(roomID uuid.UUID) string {
	return fmt.Sprintf("availability:%s", roomID)
}
