package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
)

// CountRow is a label/count pair used by the report projections.
type CountRow struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type OccupantRepo interface {
	Create(ctx context.Context, o *model.Occupant) error
	Update(ctx context.Context, o *model.Occupant) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Occupant, error)
	ListWithCursor(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.Occupant, error)
	BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) (int64, error)
	CountByDepartment(ctx context.Context) ([]CountRow, error)
	CountByStatus(ctx context.Context) ([]CountRow, error)
	UpdateWithReconcile(ctx context.Context, o *model.Occupant, removeRoomIDs []uuid.UUID, addRooms []model.RoomAssignment, returnKeyAssignmentIDs []uuid.UUID, addKeys []model.KeyAssignment) error
}

type occupantRepo struct{ db *gorm.DB }

func NewOccupantRepo(db *gorm.DB) OccupantRepo {
	return &occupantRepo{db: db}
}

func (r *occupantRepo) Create(ctx context.Context, o *model.Occupant) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *occupantRepo) Update(ctx context.Context, o *model.Occupant) error {
	return r.db.WithContext(ctx).Where(&model.Occupant{ID: o.ID}).Updates(o).Error
}

func (r *occupantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Occupant{}, "id = ?", id).Error
}

func (r *occupantRepo) Get(ctx context.Context, id uuid.UUID) (*model.Occupant, error) {
	var o model.Occupant
	err := r.db.WithContext(ctx).
		Preload("RoomAssignments").
		Preload("KeyAssignments", "returned_at IS NULL").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *occupantRepo) ListWithCursor(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.Occupant, error) {
	q := r.db.WithContext(ctx)

	if !afterCreatedAt.IsZero() && afterID != uuid.Nil {
		comparisonOp := ">"
		if timeDesc {
			comparisonOp = "<"
		}
		q = q.Where(
			"(created_at "+comparisonOp+" ?) OR (created_at = ? AND id "+comparisonOp+" ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	orderBy := "created_at ASC, id ASC"
	if timeDesc {
		orderBy = "created_at DESC, id DESC"
	}

	var occupants []*model.Occupant
	return occupants, q.Order(orderBy).Limit(limit).Find(&occupants).Error
}

func (r *occupantRepo) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Occupant{}).
		Where("id IN ?", ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *occupantRepo) CountByDepartment(ctx context.Context) ([]CountRow, error) {
	var rows []CountRow
	err := r.db.WithContext(ctx).Model(&model.Occupant{}).
		Select("COALESCE(department, 'unassigned') AS label, COUNT(*) AS count").
		Group("COALESCE(department, 'unassigned')").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *occupantRepo) CountByStatus(ctx context.Context) ([]CountRow, error) {
	var rows []CountRow
	err := r.db.WithContext(ctx).Model(&model.Occupant{}).
		Select("status AS label, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// UpdateWithReconcile applies an occupant edit together with the room
// and key set differences computed by the service, as one transaction.
func (r *occupantRepo) UpdateWithReconcile(ctx context.Context, o *model.Occupant, removeRoomIDs []uuid.UUID, addRooms []model.RoomAssignment, returnKeyAssignmentIDs []uuid.UUID, addKeys []model.KeyAssignment) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&model.Occupant{ID: o.ID}).Updates(o).Error; err != nil {
			return err
		}

		// Removals first, then additions.
		if len(removeRoomIDs) > 0 {
			if err := tx.Where("occupant_id = ? AND room_id IN ?", o.ID, removeRoomIDs).
				Delete(&model.RoomAssignment{}).Error; err != nil {
				return err
			}
		}
		if len(addRooms) > 0 {
			if err := tx.Create(&addRooms).Error; err != nil {
				return err
			}
		}

		for _, kaID := range returnKeyAssignmentIDs {
			var ka model.KeyAssignment
			if err := tx.Where("id = ? AND returned_at IS NULL", kaID).First(&ka).Error; err != nil {
				return err
			}
			if err := tx.Model(&ka).Update("returned_at", now).Error; err != nil {
				return err
			}
			if err := releaseKey(tx, ka.KeyID); err != nil {
				return err
			}
		}
		for i := range addKeys {
			if err := tx.Create(&addKeys[i]).Error; err != nil {
				return err
			}
			if err := claimKey(tx, addKeys[i].KeyID); err != nil {
				return err
			}
		}
		return nil
	})
}
