package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
)

// FacilityHandler exposes the room and key inventories. Rooms are
// maintained elsewhere, so only reads are offered for them.
type FacilityHandler struct {
	rooms repo.RoomRepo
	keys  repo.KeyRepo
}

func NewFacilityHandler(rooms repo.RoomRepo, keys repo.KeyRepo) *FacilityHandler {
	return &FacilityHandler{rooms: rooms, keys: keys}
}

// ListRooms godoc
//
//	@Summary		List rooms
//	@Tags			facility
//	@Produce		json
//	@Param			building	query	string	false	"Filter by building"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Room}
//	@Router			/room [get]
func (h *FacilityHandler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context(), c.Query("building"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rooms})
}

// GetRoom godoc
//
//	@Summary		Get room
//	@Tags			facility
//	@Produce		json
//	@Param			room_id	path	string	true	"Room ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Room}
//	@Router			/room/{room_id} [get]
func (h *FacilityHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	room, err := h.rooms.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: room})
}

type CreateKeyReq struct {
	Name          string `json:"name" binding:"required"`
	Type          string `json:"type" binding:"required"`
	IsPasskey     bool   `json:"is_passkey"`
	TotalQuantity int    `json:"total_quantity" binding:"min=0"`
}

// CreateKey godoc
//
//	@Summary		Create key
//	@Tags			facility
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Key}
//	@Router			/key [post]
func (h *FacilityHandler) CreateKey(c *gin.Context) {
	var req CreateKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if req.TotalQuantity == 0 {
		req.TotalQuantity = 1
	}

	k := &model.Key{
		Name:              req.Name,
		Type:              req.Type,
		IsPasskey:         req.IsPasskey,
		Status:            model.KeyStatusAvailable,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.TotalQuantity,
	}
	if err := h.keys.Create(c.Request.Context(), k); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: k})
}

// ListKeys godoc
//
//	@Summary		List keys
//	@Tags			facility
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Key}
//	@Router			/key [get]
func (h *FacilityHandler) ListKeys(c *gin.Context) {
	keys, err := h.keys.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: keys})
}
