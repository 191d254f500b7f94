package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
)

type RoomRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Room, error)
	List(ctx context.Context, building string) ([]*model.Room, error)
	CountByBuilding(ctx context.Context) ([]CountRow, error)
	CountOccupiedByBuilding(ctx context.Context) ([]CountRow, error)
}

type roomRepo struct{ db *gorm.DB }

func NewRoomRepo(db *gorm.DB) RoomRepo {
	return &roomRepo{db: db}
}

func (r *roomRepo) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, building string) ([]*model.Room, error) {
	q := r.db.WithContext(ctx)
	if building != "" {
		q = q.Where("building = ?", building)
	}
	var rooms []*model.Room
	return rooms, q.Order("building ASC, room_number ASC").Find(&rooms).Error
}

func (r *roomRepo) CountByBuilding(ctx context.Context) ([]CountRow, error) {
	var rows []CountRow
	err := r.db.WithContext(ctx).Model(&model.Room{}).
		Select("building AS label, COUNT(*) AS count").
		Group("building").
		Scan(&rows).Error
	return rows, err
}

// CountOccupiedByBuilding counts rooms holding at least one occupant
// assignment, per building.
func (r *roomRepo) CountOccupiedByBuilding(ctx context.Context) ([]CountRow, error) {
	var rows []CountRow
	err := r.db.WithContext(ctx).Model(&model.Room{}).
		Select("rooms.building AS label, COUNT(DISTINCT rooms.id) AS count").
		Joins("JOIN occupant_room_assignments ON occupant_room_assignments.room_id = rooms.id").
		Group("rooms.building").
		Scan(&rows).Error
	return rows, err
}
