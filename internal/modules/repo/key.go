package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KeyRepo interface {
	Create(ctx context.Context, k *model.Key) error
	Get(ctx context.Context, id uuid.UUID) (*model.Key, error)
	List(ctx context.Context) ([]*model.Key, error)

	ActiveAssignment(ctx context.Context, keyID, occupantID uuid.UUID) (*model.KeyAssignment, error)
	CountActiveSpares(ctx context.Context, occupantID uuid.UUID) (int64, error)
	ListActiveByOccupant(ctx context.Context, occupantID uuid.UUID) ([]*model.KeyAssignment, error)
	ListByKey(ctx context.Context, keyID uuid.UUID) ([]*model.KeyAssignment, error)

	Assign(ctx context.Context, ka *model.KeyAssignment) error
	Return(ctx context.Context, assignmentID uuid.UUID, reason *string) (*model.KeyAssignment, error)
}

type keyRepo struct{ db *gorm.DB }

func NewKeyRepo(db *gorm.DB) KeyRepo {
	return &keyRepo{db: db}
}

func (r *keyRepo) Create(ctx context.Context, k *model.Key) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *keyRepo) Get(ctx context.Context, id uuid.UUID) (*model.Key, error) {
	var k model.Key
	if err := r.db.WithContext(ctx).First(&k, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *keyRepo) List(ctx context.Context) ([]*model.Key, error) {
	var keys []*model.Key
	return keys, r.db.WithContext(ctx).Order("name ASC").Find(&keys).Error
}

func (r *keyRepo) ActiveAssignment(ctx context.Context, keyID, occupantID uuid.UUID) (*model.KeyAssignment, error) {
	var ka model.KeyAssignment
	err := r.db.WithContext(ctx).
		Where("key_id = ? AND occupant_id = ? AND returned_at IS NULL", keyID, occupantID).
		Order("assigned_at ASC").
		First(&ka).Error
	if err != nil {
		return nil, err
	}
	return &ka, nil
}

func (r *keyRepo) CountActiveSpares(ctx context.Context, occupantID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.KeyAssignment{}).
		Where("occupant_id = ? AND is_spare AND returned_at IS NULL", occupantID).
		Count(&n).Error
	return n, err
}

func (r *keyRepo) ListActiveByOccupant(ctx context.Context, occupantID uuid.UUID) ([]*model.KeyAssignment, error) {
	var items []*model.KeyAssignment
	return items, r.db.WithContext(ctx).
		Where("occupant_id = ? AND returned_at IS NULL", occupantID).
		Order("assigned_at ASC").
		Find(&items).Error
}

func (r *keyRepo) ListByKey(ctx context.Context, keyID uuid.UUID) ([]*model.KeyAssignment, error) {
	var items []*model.KeyAssignment
	return items, r.db.WithContext(ctx).
		Where("key_id = ?", keyID).
		Order("assigned_at DESC").
		Find(&items).Error
}

// Assign inserts the assignment row and claims one unit of the key's
// availability in the same transaction.
func (r *keyRepo) Assign(ctx context.Context, ka *model.KeyAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ka).Error; err != nil {
			return err
		}
		return claimKey(tx, ka.KeyID)
	})
}

// Return stamps returned_at and releases the key back to available in
// the same transaction. Only active assignments can be returned.
func (r *keyRepo) Return(ctx context.Context, assignmentID uuid.UUID, reason *string) (*model.KeyAssignment, error) {
	var ka model.KeyAssignment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND returned_at IS NULL", assignmentID).
			First(&ka).Error; err != nil {
			return err
		}
		now := time.Now()
		updates := map[string]interface{}{"returned_at": now}
		if reason != nil {
			updates["return_reason"] = *reason
		}
		if err := tx.Model(&ka).Updates(updates).Error; err != nil {
			return err
		}
		return releaseKey(tx, ka.KeyID)
	})
	if err != nil {
		return nil, err
	}
	return &ka, nil
}

func claimKey(tx *gorm.DB, keyID uuid.UUID) error {
	var k model.Key
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&k, "id = ?", keyID).Error; err != nil {
		return err
	}
	if k.AvailableQuantity > 0 {
		k.AvailableQuantity--
	}
	status := model.KeyStatusAvailable
	if k.AvailableQuantity == 0 {
		status = model.KeyStatusAssigned
	}
	return tx.Model(&k).Updates(map[string]interface{}{
		"available_quantity": k.AvailableQuantity,
		"status":             status,
	}).Error
}

func releaseKey(tx *gorm.DB, keyID uuid.UUID) error {
	var k model.Key
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&k, "id = ?", keyID).Error; err != nil {
		return err
	}
	if k.AvailableQuantity < k.TotalQuantity {
		k.AvailableQuantity++
	}
	return tx.Model(&k).Updates(map[string]interface{}{
		"available_quantity": k.AvailableQuantity,
		"status":             model.KeyStatusAvailable,
	}).Error
}
