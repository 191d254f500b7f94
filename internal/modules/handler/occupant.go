package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
	"gorm.io/gorm"
)

type OccupantHandler struct {
	svc      service.OccupantService
	ledger   service.LedgerService
	importer service.ImporterService
}

func NewOccupantHandler(svc service.OccupantService, ledger service.LedgerService, importer service.ImporterService) *OccupantHandler {
	return &OccupantHandler{svc: svc, ledger: ledger, importer: importer}
}

type OccupantReq struct {
	FirstName             string  `json:"first_name" binding:"required"`
	LastName              string  `json:"last_name" binding:"required"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	Department            *string `json:"department"`
	Title                 *string `json:"title"`
	Status                string  `json:"status"`
	AccessLevel           string  `json:"access_level"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	Notes                 *string `json:"notes"`
}

func (r OccupantReq) toModel() *model.Occupant {
	return &model.Occupant{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Email:                 r.Email,
		Phone:                 r.Phone,
		Department:            r.Department,
		Title:                 r.Title,
		Status:                r.Status,
		AccessLevel:           r.AccessLevel,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		Notes:                 r.Notes,
	}
}

// CreateOccupant godoc
//
//	@Summary		Create occupant
//	@Description	Register a person who can hold room and key assignments
//	@Tags			occupant
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Occupant}
//	@Router			/occupant [post]
func (h *OccupantHandler) CreateOccupant(c *gin.Context) {
	var req OccupantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	o := req.toModel()
	if err := h.svc.Create(c.Request.Context(), o); err != nil {
		if errors.Is(err, service.ErrInvalidOccupantStatus) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: o})
}

// GetOccupant godoc
//
//	@Summary		Get occupant
//	@Description	Fetch an occupant with room and key assignments preloaded
//	@Tags			occupant
//	@Produce		json
//	@Param			occupant_id	path	string	true	"Occupant ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Occupant}
//	@Router			/occupant/{occupant_id} [get]
func (h *OccupantHandler) GetOccupant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("occupant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	o, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.Err(http.StatusNotFound, "occupant not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: o})
}

type ListOccupantsReq struct {
	Limit    int    `form:"limit,default=20" json:"limit" binding:"required,min=1,max=200" example:"20"`
	Cursor   string `form:"cursor" json:"cursor"`
	TimeDesc bool   `form:"time_desc,default=false" json:"time_desc" example:"false"`
}

// ListOccupants godoc
//
//	@Summary		List occupants
//	@Description	Cursor-paginated occupant listing ordered by creation time
//	@Tags			occupant
//	@Produce		json
//	@Param			limit		query	integer	false	"Limit of occupants to return, default 20. Max 200."
//	@Param			cursor		query	string	false	"Cursor from the previous response for the next page."
//	@Param			time_desc	query	boolean	false	"Order by created_at descending if true"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListOccupantsOutput}
//	@Router			/occupant [get]
func (h *OccupantHandler) ListOccupants(c *gin.Context) {
	req := ListOccupantsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListOccupantsInput{
		Limit:    req.Limit,
		Cursor:   req.Cursor,
		TimeDesc: req.TimeDesc,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type UpdateOccupantReq struct {
	OccupantReq
	// When present, active room and key assignments are reconciled to
	// exactly these sets inside the same transaction as the field edit.
	RoomIDs *[]uuid.UUID `json:"room_ids"`
	KeyIDs  *[]uuid.UUID `json:"key_ids"`
}

type UpdateOccupantResp struct {
	Occupant  *model.Occupant          `json:"occupant"`
	Reconcile *service.ReconcileResult `json:"reconcile,omitempty"`
}

// UpdateOccupant godoc
//
//	@Summary		Update occupant
//	@Description	Edit occupant fields and optionally reconcile assignments to a desired state
//	@Tags			occupant
//	@Accept			json
//	@Produce		json
//	@Param			occupant_id	path	string	true	"Occupant ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.UpdateOccupantResp}
//	@Router			/occupant/{occupant_id} [put]
func (h *OccupantHandler) UpdateOccupant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("occupant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	var req UpdateOccupantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	o := req.toModel()
	o.ID = id
	resp := UpdateOccupantResp{Occupant: o}

	if req.RoomIDs != nil || req.KeyIDs != nil {
		desiredRooms, desiredKeys, err := h.desiredSets(c, id, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		result, err := h.ledger.UpdateOccupant(c.Request.Context(), o, desiredRooms, desiredKeys)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		resp.Reconcile = result
	} else if err := h.svc.Update(c.Request.Context(), o); err != nil {
		if errors.Is(err, service.ErrInvalidOccupantStatus) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: resp})
}

// desiredSets fills the omitted half of a partial reconcile request
// with the occupant's current assignments so it is left untouched.
func (h *OccupantHandler) desiredSets(c *gin.Context, id uuid.UUID, req UpdateOccupantReq) ([]uuid.UUID, []uuid.UUID, error) {
	var rooms, keys []uuid.UUID
	if req.RoomIDs != nil {
		rooms = *req.RoomIDs
	}
	if req.KeyIDs != nil {
		keys = *req.KeyIDs
	}
	if req.RoomIDs != nil && req.KeyIDs != nil {
		return rooms, keys, nil
	}

	current, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	if req.RoomIDs == nil {
		for _, ra := range current.RoomAssignments {
			rooms = append(rooms, ra.RoomID)
		}
	}
	if req.KeyIDs == nil {
		for _, ka := range current.KeyAssignments {
			if ka.ReturnedAt == nil {
				keys = append(keys, ka.KeyID)
			}
		}
	}
	return rooms, keys, nil
}

// DeleteOccupant godoc
//
//	@Summary		Delete occupant
//	@Tags			occupant
//	@Produce		json
//	@Param			occupant_id	path	string	true	"Occupant ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/occupant/{occupant_id} [delete]
func (h *OccupantHandler) DeleteOccupant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("occupant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type BulkStatusReq struct {
	OccupantIDs []uuid.UUID `json:"occupant_ids" binding:"required,min=1"`
	Status      string      `json:"status" binding:"required"`
}

// BulkUpdateStatus godoc
//
//	@Summary		Bulk update occupant status
//	@Description	Set the same status on a batch of occupants in one statement
//	@Tags			occupant
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/occupant/bulk_status [put]
func (h *OccupantHandler) BulkUpdateStatus(c *gin.Context) {
	var req BulkStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	updated, err := h.svc.BulkUpdateStatus(c.Request.Context(), req.OccupantIDs, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOccupantStatus) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"updated": updated}})
}

// ImportOccupantsCSV godoc
//
//	@Summary		Import occupants from CSV
//	@Description	Parse an uploaded CSV; invalid rows are reported per row and do not block the rest
//	@Tags			occupant
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"CSV file with a header row"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ImportResult}
//	@Router			/occupant/import [post]
func (h *OccupantHandler) ImportOccupantsCSV(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file is required", err))
		return
	}

	result, err := h.importer.ImportOccupantsCSV(c.Request.Context(), fh)
	if err != nil {
		if errors.Is(err, service.ErrEmptyFile) || errors.Is(err, service.ErrMissingHeader) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: result})
}
