package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
	"gorm.io/gorm"
)

type LedgerHandler struct {
	svc service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: s}
}

type PersonRefReq struct {
	Kind string    `json:"kind" binding:"required"`
	ID   uuid.UUID `json:"id" binding:"required"`
}

type AssignRoomReq struct {
	Persons        []PersonRefReq `json:"persons" binding:"required,min=1"`
	AssignmentType string         `json:"assignment_type"`
	IsPrimary      bool           `json:"is_primary"`
	Schedule       *string        `json:"schedule"`
	Notes          *string        `json:"notes"`
}

// AssignRoom godoc
//
//	@Summary		Assign room
//	@Description	Assign one or more persons to a room; a primary assignment demotes the previous primary
//	@Tags			ledger
//	@Accept			json
//	@Produce		json
//	@Param			room_id	path	string	true	"Room ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=[]model.RoomAssignment}
//	@Router			/room/{room_id}/assignment [post]
func (h *LedgerHandler) AssignRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	var req AssignRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.AssignRoomInput{
		RoomID:         roomID,
		AssignmentType: req.AssignmentType,
		IsPrimary:      req.IsPrimary,
		Schedule:       req.Schedule,
		Notes:          req.Notes,
	}
	for _, p := range req.Persons {
		in.Persons = append(in.Persons, service.PersonRef{Kind: p.Kind, ID: p.ID})
	}

	created, err := h.svc.AssignRoom(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, serializer.Response{Data: created})
	case errors.Is(err, service.ErrUnknownPersonKind), errors.Is(err, service.ErrNoPersons):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, serializer.Err(http.StatusNotFound, "room not found", err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// UnassignRoom godoc
//
//	@Summary		Remove room assignment
//	@Tags			ledger
//	@Produce		json
//	@Param			room_id			path	string	true	"Room ID"		Format(uuid)
//	@Param			assignment_id	path	string	true	"Assignment ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/room/{room_id}/assignment/{assignment_id} [delete]
func (h *LedgerHandler) UnassignRoom(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.UnassignRoom(c.Request.Context(), assignmentID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// ListRoomAssignments godoc
//
//	@Summary		List room assignments
//	@Tags			ledger
//	@Produce		json
//	@Param			room_id	path	string	true	"Room ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.RoomAssignment}
//	@Router			/room/{room_id}/assignment [get]
func (h *LedgerHandler) ListRoomAssignments(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ListRoomAssignments(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type AssignKeyReq struct {
	OccupantID     uuid.UUID `json:"occupant_id" binding:"required"`
	SpareConfirmed bool      `json:"spare_confirmed"`
	SpareReason    string    `json:"spare_reason"`
}

// AssignKey godoc
//
//	@Summary		Assign key
//	@Description	Issue a key to an occupant; a repeat issue must be confirmed as a spare with a reason
//	@Tags			ledger
//	@Accept			json
//	@Produce		json
//	@Param			key_id	path	string	true	"Key ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.KeyAssignment}
//	@Router			/key/{key_id}/assignment [post]
func (h *LedgerHandler) AssignKey(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("key_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	var req AssignKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ka, err := h.svc.AssignKey(c.Request.Context(), service.AssignKeyInput{
		KeyID:          keyID,
		OccupantID:     req.OccupantID,
		SpareConfirmed: req.SpareConfirmed,
		SpareReason:    req.SpareReason,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, serializer.Response{Data: ka})
	case errors.Is(err, service.ErrSpareNotConfirmed),
		errors.Is(err, service.ErrSpareReasonRequired),
		errors.Is(err, service.ErrSpareKeyCapReached):
		c.JSON(http.StatusConflict, serializer.ConflictErr(err.Error(), err))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, serializer.Err(http.StatusNotFound, "key not found", err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

type ReturnKeyReq struct {
	Reason *string `json:"reason"`
}

// ReturnKey godoc
//
//	@Summary		Return key
//	@Description	Close an active key assignment, restoring key availability
//	@Tags			ledger
//	@Accept			json
//	@Produce		json
//	@Param			key_id			path	string	true	"Key ID"		Format(uuid)
//	@Param			assignment_id	path	string	true	"Assignment ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.KeyAssignment}
//	@Router			/key/{key_id}/assignment/{assignment_id}/return [post]
func (h *LedgerHandler) ReturnKey(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	// Body is optional.
	var req ReturnKeyReq
	_ = c.ShouldBindJSON(&req)

	ka, err := h.svc.ReturnKey(c.Request.Context(), assignmentID, req.Reason)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, serializer.Response{Data: ka})
	case errors.Is(err, service.ErrNoActiveKeyAssignment):
		c.JSON(http.StatusConflict, serializer.ConflictErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// ListKeyAssignments godoc
//
//	@Summary		List key assignments
//	@Description	Assignment history of a key, active rows first
//	@Tags			ledger
//	@Produce		json
//	@Param			key_id	path	string	true	"Key ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.KeyAssignment}
//	@Router			/key/{key_id}/assignment [get]
func (h *LedgerHandler) ListKeyAssignments(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("key_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ListKeyAssignments(c.Request.Context(), keyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
