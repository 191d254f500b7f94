package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
)

type RoomAssignmentRepo interface {
	Create(ctx context.Context, ra *model.RoomAssignment) error
	// CreatePrimary demotes any existing primary of the same
	// (occupant, assignment_type) before inserting, atomically.
	CreatePrimary(ctx context.Context, ra *model.RoomAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOccupant(ctx context.Context, occupantID uuid.UUID) ([]*model.RoomAssignment, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.RoomAssignment, error)
	FindPrimary(ctx context.Context, occupantID uuid.UUID, assignmentType string) (*model.RoomAssignment, error)
}

type roomAssignmentRepo struct{ db *gorm.DB }

func NewRoomAssignmentRepo(db *gorm.DB) RoomAssignmentRepo {
	return &roomAssignmentRepo{db: db}
}

func (r *roomAssignmentRepo) Create(ctx context.Context, ra *model.RoomAssignment) error {
	return r.db.WithContext(ctx).Create(ra).Error
}

func (r *roomAssignmentRepo) CreatePrimary(ctx context.Context, ra *model.RoomAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RoomAssignment{}).
			Where("occupant_id = ? AND assignment_type = ? AND is_primary", ra.OccupantID, ra.AssignmentType).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		ra.IsPrimary = true
		return tx.Create(ra).Error
	})
}

func (r *roomAssignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RoomAssignment{}, "id = ?", id).Error
}

func (r *roomAssignmentRepo) ListByOccupant(ctx context.Context, occupantID uuid.UUID) ([]*model.RoomAssignment, error) {
	var items []*model.RoomAssignment
	return items, r.db.WithContext(ctx).
		Preload("Room").
		Where("occupant_id = ?", occupantID).
		Order("assigned_at ASC").
		Find(&items).Error
}

func (r *roomAssignmentRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.RoomAssignment, error) {
	var items []*model.RoomAssignment
	return items, r.db.WithContext(ctx).
		Preload("Occupant").
		Where("room_id = ?", roomID).
		Order("assigned_at ASC").
		Find(&items).Error
}

func (r *roomAssignmentRepo) FindPrimary(ctx context.Context, occupantID uuid.UUID, assignmentType string) (*model.RoomAssignment, error) {
	var ra model.RoomAssignment
	err := r.db.WithContext(ctx).
		Where("occupant_id = ? AND assignment_type = ? AND is_primary", occupantID, assignmentType).
		First(&ra).Error
	if err != nil {
		return nil, err
	}
	return &ra, nil
}
