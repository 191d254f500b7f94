package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TermRepo interface {
	// Upsert replaces a previously imported term with the same term
	// number, together with its assignment rows, atomically.
	Upsert(ctx context.Context, term *model.CourtTerm) error
	Get(ctx context.Context, id uuid.UUID) (*model.CourtTerm, error)
	List(ctx context.Context) ([]*model.CourtTerm, error)
}

type termRepo struct{ db *gorm.DB }

func NewTermRepo(db *gorm.DB) TermRepo {
	return &termRepo{db: db}
}

func (r *termRepo) Upsert(ctx context.Context, term *model.CourtTerm) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.CourtTerm
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("term_number = ?", term.TermNumber).
			First(&existing).Error
		if err == nil {
			if err := tx.Where("term_id = ?", existing.ID).Delete(&model.TermAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(term).Error
	})
}

func (r *termRepo) Get(ctx context.Context, id uuid.UUID) (*model.CourtTerm, error) {
	var term model.CourtTerm
	err := r.db.WithContext(ctx).Preload("Assignments").First(&term, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *termRepo) List(ctx context.Context) ([]*model.CourtTerm, error) {
	var terms []*model.CourtTerm
	return terms, r.db.WithContext(ctx).Order("start_date DESC").Find(&terms).Error
}
