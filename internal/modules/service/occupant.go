package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"github.com/youngpro718/nysc-facilities-sub003/internal/pkg/paging"
)

var ErrInvalidOccupantStatus = errors.New("invalid occupant status")

func validOccupantStatus(status string) bool {
	switch status {
	case model.OccupantStatusActive, model.OccupantStatusInactive,
		model.OccupantStatusOnLeave, model.OccupantStatusTerminated:
		return true
	}
	return false
}

type OccupantService interface {
	Create(ctx context.Context, o *model.Occupant) error
	Update(ctx context.Context, o *model.Occupant) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Occupant, error)
	List(ctx context.Context, in ListOccupantsInput) (*ListOccupantsOutput, error)
	BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) (int64, error)
}

type occupantService struct{ r repo.OccupantRepo }

func NewOccupantService(r repo.OccupantRepo) OccupantService {
	return &occupantService{r: r}
}

func (s *occupantService) Create(ctx context.Context, o *model.Occupant) error {
	if o.Status == "" {
		o.Status = model.OccupantStatusActive
	}
	if !validOccupantStatus(o.Status) {
		return ErrInvalidOccupantStatus
	}
	if o.AccessLevel == "" {
		o.AccessLevel = model.AccessLevelStandard
	}
	return s.r.Create(ctx, o)
}

func (s *occupantService) Update(ctx context.Context, o *model.Occupant) error {
	if o.ID == uuid.Nil {
		return errors.New("occupant id is empty")
	}
	if o.Status != "" && !validOccupantStatus(o.Status) {
		return ErrInvalidOccupantStatus
	}
	return s.r.Update(ctx, o)
}

func (s *occupantService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("occupant id is empty")
	}
	return s.r.Delete(ctx, id)
}

func (s *occupantService) GetByID(ctx context.Context, id uuid.UUID) (*model.Occupant, error) {
	if id == uuid.Nil {
		return nil, errors.New("occupant id is empty")
	}
	return s.r.Get(ctx, id)
}

type ListOccupantsInput struct {
	Limit    int    `json:"limit"`
	Cursor   string `json:"cursor"`
	TimeDesc bool   `json:"time_desc"`
}

type ListOccupantsOutput struct {
	Items      []*model.Occupant `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

func (s *occupantService) List(ctx context.Context, in ListOccupantsInput) (*ListOccupantsOutput, error) {
	// Parse cursor (createdAt, id); an empty cursor indicates starting from the latest
	var afterT time.Time
	var afterID uuid.UUID
	var err error
	if in.Cursor != "" {
		afterT, afterID, err = paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
	}

	// Query limit+1 is used to determine has_more
	occupants, err := s.r.ListWithCursor(ctx, afterT, afterID, in.Limit+1, in.TimeDesc)
	if err != nil {
		return nil, err
	}

	out := &ListOccupantsOutput{
		Items:   occupants,
		HasMore: false,
	}
	if len(occupants) > in.Limit {
		out.HasMore = true
		out.Items = occupants[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	return out, nil
}

func (s *occupantService) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if !validOccupantStatus(status) {
		return 0, ErrInvalidOccupantStatus
	}
	return s.r.BulkUpdateStatus(ctx, ids, status)
}
