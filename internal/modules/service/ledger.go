package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUnknownPersonKind     = errors.New("unknown person kind")
	ErrNoPersons             = errors.New("at least one person is required")
	ErrSpareNotConfirmed     = errors.New("occupant already holds this key; spare assignment must be confirmed")
	ErrSpareReasonRequired   = errors.New("spare key assignments require a reason")
	ErrSpareKeyCapReached    = errors.New("spare key limit reached for this occupant")
	ErrNoActiveKeyAssignment = errors.New("no active assignment for this key")
)

// PersonRef is a tagged person reference. Assignment targets can come
// from three source tables; the kind tag is dispatched at the data
// access boundary instead of duplicating the assignment path per table.
type PersonRef struct {
	Kind string    `json:"kind"`
	ID   uuid.UUID `json:"id"`
}

func (p PersonRef) validate() error {
	switch p.Kind {
	case model.PersonKindOccupant, model.PersonKindProfile, model.PersonKindPersonnel:
		return nil
	}
	return ErrUnknownPersonKind
}

type AssignRoomInput struct {
	RoomID         uuid.UUID
	Persons        []PersonRef
	AssignmentType string
	IsPrimary      bool
	Schedule       *string
	Notes          *string
}

type AssignKeyInput struct {
	KeyID      uuid.UUID
	OccupantID uuid.UUID
	// SpareConfirmed acknowledges that the occupant already holds this
	// key and the new assignment is a justified spare.
	SpareConfirmed bool
	SpareReason    string
}

// ReconcileResult reports what a desired-state update actually changed.
// A repeat call with the same desired sets yields the zero value.
type ReconcileResult struct {
	RoomsAdded   int `json:"rooms_added"`
	RoomsRemoved int `json:"rooms_removed"`
	KeysAdded    int `json:"keys_added"`
	KeysReturned int `json:"keys_returned"`
}

type LedgerService interface {
	AssignRoom(ctx context.Context, in AssignRoomInput) ([]*model.RoomAssignment, error)
	UnassignRoom(ctx context.Context, assignmentID uuid.UUID) error
	AssignKey(ctx context.Context, in AssignKeyInput) (*model.KeyAssignment, error)
	ReturnKey(ctx context.Context, assignmentID uuid.UUID, reason *string) (*model.KeyAssignment, error)
	UpdateOccupant(ctx context.Context, o *model.Occupant, desiredRoomIDs, desiredKeyIDs []uuid.UUID) (*ReconcileResult, error)
	ListKeyAssignments(ctx context.Context, keyID uuid.UUID) ([]*model.KeyAssignment, error)
	ListRoomAssignments(ctx context.Context, roomID uuid.UUID) ([]*model.RoomAssignment, error)
}

type ledgerService struct {
	occupants   repo.OccupantRepo
	rooms       repo.RoomRepo
	keys        repo.KeyRepo
	assignments repo.RoomAssignmentRepo
	spareCap    int
	log         *zap.Logger
}

func NewLedgerService(occupants repo.OccupantRepo, rooms repo.RoomRepo, keys repo.KeyRepo, assignments repo.RoomAssignmentRepo, spareCap int, log *zap.Logger) LedgerService {
	if spareCap <= 0 {
		spareCap = 2
	}
	return &ledgerService{
		occupants:   occupants,
		rooms:       rooms,
		keys:        keys,
		assignments: assignments,
		spareCap:    spareCap,
		log:         log,
	}
}

func (s *ledgerService) AssignRoom(ctx context.Context, in AssignRoomInput) ([]*model.RoomAssignment, error) {
	if len(in.Persons) == 0 {
		return nil, ErrNoPersons
	}
	for _, p := range in.Persons {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	if in.AssignmentType == "" {
		in.AssignmentType = "work_location"
	}

	// Reject before any write if the room does not exist.
	if _, err := s.rooms.Get(ctx, in.RoomID); err != nil {
		return nil, err
	}

	created := make([]*model.RoomAssignment, 0, len(in.Persons))
	for _, p := range in.Persons {
		ra := &model.RoomAssignment{
			OccupantID:     p.ID,
			PersonKind:     p.Kind,
			RoomID:         in.RoomID,
			AssignmentType: in.AssignmentType,
			Schedule:       in.Schedule,
			Notes:          in.Notes,
		}
		var err error
		if in.IsPrimary {
			// Demote-then-insert runs inside one transaction so two
			// primaries can never coexist.
			err = s.assignments.CreatePrimary(ctx, ra)
		} else {
			err = s.assignments.Create(ctx, ra)
		}
		if err != nil {
			return created, err
		}
		created = append(created, ra)
	}
	return created, nil
}

func (s *ledgerService) UnassignRoom(ctx context.Context, assignmentID uuid.UUID) error {
	if assignmentID == uuid.Nil {
		return errors.New("assignment id is empty")
	}
	return s.assignments.Delete(ctx, assignmentID)
}

func (s *ledgerService) AssignKey(ctx context.Context, in AssignKeyInput) (*model.KeyAssignment, error) {
	if _, err := s.keys.Get(ctx, in.KeyID); err != nil {
		return nil, err
	}

	existing, err := s.keys.ActiveAssignment(ctx, in.KeyID, in.OccupantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ka := &model.KeyAssignment{
		KeyID:      in.KeyID,
		OccupantID: in.OccupantID,
	}

	if existing != nil {
		// Second active assignment of the same key to the same
		// occupant: only allowed as a justified spare, up to the cap.
		if !in.SpareConfirmed {
			return nil, ErrSpareNotConfirmed
		}
		reason := strings.TrimSpace(in.SpareReason)
		if reason == "" {
			return nil, ErrSpareReasonRequired
		}
		spares, err := s.keys.CountActiveSpares(ctx, in.OccupantID)
		if err != nil {
			return nil, err
		}
		if int(spares) >= s.spareCap {
			return nil, ErrSpareKeyCapReached
		}
		ka.IsSpare = true
		ka.SpareReason = &reason
	}

	if err := s.keys.Assign(ctx, ka); err != nil {
		return nil, err
	}
	s.log.Sugar().Infow("key assigned",
		"key_id", in.KeyID, "occupant_id", in.OccupantID, "spare", ka.IsSpare)
	return ka, nil
}

func (s *ledgerService) ReturnKey(ctx context.Context, assignmentID uuid.UUID, reason *string) (*model.KeyAssignment, error) {
	ka, err := s.keys.Return(ctx, assignmentID, reason)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveKeyAssignment
		}
		return nil, err
	}
	return ka, nil
}

// UpdateOccupant applies an occupant edit plus a desired-state room and
// key reconciliation: removed = current - desired, added = desired -
// current, removals before additions, all in one transaction.
func (s *ledgerService) UpdateOccupant(ctx context.Context, o *model.Occupant, desiredRoomIDs, desiredKeyIDs []uuid.UUID) (*ReconcileResult, error) {
	if o.ID == uuid.Nil {
		return nil, errors.New("occupant id is empty")
	}

	currentRooms, err := s.assignments.ListByOccupant(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	currentKeys, err := s.keys.ListActiveByOccupant(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	currentRoomSet := make(map[uuid.UUID]bool, len(currentRooms))
	for _, ra := range currentRooms {
		currentRoomSet[ra.RoomID] = true
	}
	desiredRoomSet := make(map[uuid.UUID]bool, len(desiredRoomIDs))
	for _, id := range desiredRoomIDs {
		desiredRoomSet[id] = true
	}

	var removeRoomIDs []uuid.UUID
	for id := range currentRoomSet {
		if !desiredRoomSet[id] {
			removeRoomIDs = append(removeRoomIDs, id)
		}
	}
	var addRooms []model.RoomAssignment
	for _, id := range desiredRoomIDs {
		if !currentRoomSet[id] {
			addRooms = append(addRooms, model.RoomAssignment{
				OccupantID: o.ID,
				PersonKind: model.PersonKindOccupant,
				RoomID:     id,
			})
		}
	}

	currentKeyByID := make(map[uuid.UUID]uuid.UUID, len(currentKeys)) // key id -> assignment id
	for _, ka := range currentKeys {
		currentKeyByID[ka.KeyID] = ka.ID
	}
	desiredKeySet := make(map[uuid.UUID]bool, len(desiredKeyIDs))
	for _, id := range desiredKeyIDs {
		desiredKeySet[id] = true
	}

	var returnAssignmentIDs []uuid.UUID
	for keyID, kaID := range currentKeyByID {
		if !desiredKeySet[keyID] {
			returnAssignmentIDs = append(returnAssignmentIDs, kaID)
		}
	}
	var addKeys []model.KeyAssignment
	for _, id := range desiredKeyIDs {
		if _, held := currentKeyByID[id]; !held {
			addKeys = append(addKeys, model.KeyAssignment{
				KeyID:      id,
				OccupantID: o.ID,
			})
		}
	}

	if err := s.occupants.UpdateWithReconcile(ctx, o, removeRoomIDs, addRooms, returnAssignmentIDs, addKeys); err != nil {
		return nil, err
	}

	return &ReconcileResult{
		RoomsAdded:   len(addRooms),
		RoomsRemoved: len(removeRoomIDs),
		KeysAdded:    len(addKeys),
		KeysReturned: len(returnAssignmentIDs),
	}, nil
}

func (s *ledgerService) ListKeyAssignments(ctx context.Context, keyID uuid.UUID) ([]*model.KeyAssignment, error) {
	return s.keys.ListByKey(ctx, keyID)
}

func (s *ledgerService) ListRoomAssignments(ctx context.Context, roomID uuid.UUID) ([]*model.RoomAssignment, error) {
	return s.assignments.ListByRoom(ctx, roomID)
}
