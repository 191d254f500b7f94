package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStatusConflict is returned when a row is not in any of the states
// a transition expects. The caller decides how to surface it.
var ErrStatusConflict = errors.New("status conflict")

// CascadeSpec describes how a relocation transition propagates to its
// schedule change children.
type CascadeSpec struct {
	ParentFrom    []string
	ParentTo      string
	ChildFrom     []string
	ChildTo       string
	StampActual   bool // set parent's actual_end_date
	StampChildEnd bool // set children's end_date
}

type RelocationRepo interface {
	Create(ctx context.Context, rel *model.RoomRelocation) error
	Get(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error)
	List(ctx context.Context, status string, limit, offset int) ([]*model.RoomRelocation, int64, error)
	Transition(ctx context.Context, id uuid.UUID, spec CascadeSpec) (*model.RoomRelocation, error)

	CreateWork(ctx context.Context, w *model.WorkAssignment) error
	GetWork(ctx context.Context, id uuid.UUID) (*model.WorkAssignment, error)
	UpdateWorkStatus(ctx context.Context, id uuid.UUID, from []string, to string, completionNotes *string) (*model.WorkAssignment, error)
	ListWorkByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.WorkAssignment, error)

	CreateSession(ctx context.Context, s *model.CourtSession) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListSessionsByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.CourtSession, error)

	// Blackout queries for the availability calculator: events in the
	// relocation's temporary room on one calendar day.
	ListSessionsByRoomAndDate(ctx context.Context, roomID uuid.UUID, day time.Time) ([]model.CourtSession, error)
	ListOpenWorkByRoomAndDate(ctx context.Context, roomID uuid.UUID, day time.Time) ([]model.WorkAssignment, error)
}

type relocationRepo struct{ db *gorm.DB }

func NewRelocationRepo(db *gorm.DB) RelocationRepo {
	return &relocationRepo{db: db}
}

func (r *relocationRepo) Create(ctx context.Context, rel *model.RoomRelocation) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *relocationRepo) Get(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error) {
	var rel model.RoomRelocation
	err := r.db.WithContext(ctx).
		Preload("WorkAssignments").
		Preload("CourtSessions").
		Preload("ScheduleChanges").
		First(&rel, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *relocationRepo) List(ctx context.Context, status string, limit, offset int) ([]*model.RoomRelocation, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.RoomRelocation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.RoomRelocation
	err := q.Order("start_date DESC, id DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// Transition moves the relocation between states and cascades the
// matching schedule change children, all inside one transaction. The
// parent row is locked first so concurrent transitions serialize.
func (r *relocationRepo) Transition(ctx context.Context, id uuid.UUID, spec CascadeSpec) (*model.RoomRelocation, error) {
	var rel model.RoomRelocation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rel, "id = ?", id).Error; err != nil {
			return err
		}

		allowed := false
		for _, s := range spec.ParentFrom {
			if rel.Status == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrStatusConflict
		}

		now := time.Now()
		parentUpdates := map[string]interface{}{"status": spec.ParentTo}
		if spec.StampActual {
			parentUpdates["actual_end_date"] = now
		}
		if err := tx.Model(&rel).Updates(parentUpdates).Error; err != nil {
			return err
		}

		if len(spec.ChildFrom) > 0 {
			childUpdates := map[string]interface{}{"status": spec.ChildTo}
			if spec.StampChildEnd {
				childUpdates["end_date"] = now
			}
			if err := tx.Model(&model.ScheduleChange{}).
				Where("relocation_id = ? AND status IN ?", id, spec.ChildFrom).
				Updates(childUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *relocationRepo) CreateWork(ctx context.Context, w *model.WorkAssignment) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *relocationRepo) GetWork(ctx context.Context, id uuid.UUID) (*model.WorkAssignment, error) {
	var w model.WorkAssignment
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *relocationRepo) UpdateWorkStatus(ctx context.Context, id uuid.UUID, from []string, to string, completionNotes *string) (*model.WorkAssignment, error) {
	var w model.WorkAssignment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&w, "id = ?", id).Error; err != nil {
			return err
		}

		allowed := false
		for _, s := range from {
			if w.Status == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrStatusConflict
		}

		updates := map[string]interface{}{"status": to}
		if to == model.WorkStatusCompleted {
			updates["completed_at"] = time.Now()
			if completionNotes != nil {
				updates["completion_notes"] = *completionNotes
			}
		}
		return tx.Model(&w).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *relocationRepo) ListWorkByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.WorkAssignment, error) {
	var items []*model.WorkAssignment
	return items, r.db.WithContext(ctx).
		Where("relocation_id = ?", relocationID).
		Order("work_date ASC, start_time ASC").
		Find(&items).Error
}

func (r *relocationRepo) CreateSession(ctx context.Context, s *model.CourtSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *relocationRepo) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CourtSession{}, "id = ?", id).Error
}

func (r *relocationRepo) ListSessionsByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.CourtSession, error) {
	var items []*model.CourtSession
	return items, r.db.WithContext(ctx).
		Where("relocation_id = ?", relocationID).
		Order("session_date ASC, start_time ASC").
		Find(&items).Error
}

func (r *relocationRepo) ListSessionsByRoomAndDate(ctx context.Context, roomID uuid.UUID, day time.Time) ([]model.CourtSession, error) {
	var items []model.CourtSession
	err := r.db.WithContext(ctx).Model(&model.CourtSession{}).
		Joins("JOIN room_relocations ON room_relocations.id = relocation_court_sessions.relocation_id").
		Where("room_relocations.temporary_room_id = ? AND relocation_court_sessions.session_date = ?", roomID, day.Format("2006-01-02")).
		Order("relocation_court_sessions.start_time ASC").
		Find(&items).Error
	return items, err
}

func (r *relocationRepo) ListOpenWorkByRoomAndDate(ctx context.Context, roomID uuid.UUID, day time.Time) ([]model.WorkAssignment, error) {
	var items []model.WorkAssignment
	err := r.db.WithContext(ctx).Model(&model.WorkAssignment{}).
		Joins("JOIN room_relocations ON room_relocations.id = relocation_work_assignments.relocation_id").
		Where("room_relocations.temporary_room_id = ? AND relocation_work_assignments.work_date = ?", roomID, day.Format("2006-01-02")).
		Where("relocation_work_assignments.status IN ?", []string{model.WorkStatusScheduled, model.WorkStatusInProgress}).
		Order("relocation_work_assignments.start_time ASC").
		Find(&items).Error
	return items, err
}
