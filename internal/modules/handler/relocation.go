package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
	"gorm.io/gorm"
)

type RelocationHandler struct {
	svc     service.RelocationService
	avail   service.AvailabilityService
	changes repo.ScheduleChangeRepo
}

func NewRelocationHandler(svc service.RelocationService, avail service.AvailabilityService, changes repo.ScheduleChangeRepo) *RelocationHandler {
	return &RelocationHandler{svc: svc, avail: avail, changes: changes}
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

type CreateRelocationReq struct {
	OriginalRoomID  uuid.UUID                     `json:"original_room_id" binding:"required"`
	TemporaryRoomID uuid.UUID                     `json:"temporary_room_id" binding:"required"`
	StartDate       string                        `json:"start_date" binding:"required"`
	EndDate         *string                       `json:"end_date"`
	RelocationType  string                        `json:"relocation_type"`
	Reason          *string                       `json:"reason"`
	TermID          *uuid.UUID                    `json:"term_id"`
	ScheduleChanges []service.ScheduleChangeInput `json:"schedule_changes"`
}

// CreateRelocation godoc
//
//	@Summary		Create relocation
//	@Description	Schedule a courtroom relocation with its schedule changes
//	@Tags			relocation
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.RoomRelocation}
//	@Router			/relocation [post]
func (h *RelocationHandler) CreateRelocation(c *gin.Context) {
	var req CreateRelocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("start_date must be YYYY-MM-DD", err))
		return
	}
	var end *time.Time
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("end_date must be YYYY-MM-DD", err))
			return
		}
		end = &t
	}

	rel, err := h.svc.Create(c.Request.Context(), service.CreateRelocationInput{
		OriginalRoomID:  req.OriginalRoomID,
		TemporaryRoomID: req.TemporaryRoomID,
		StartDate:       start,
		EndDate:         end,
		RelocationType:  req.RelocationType,
		Reason:          req.Reason,
		TermID:          req.TermID,
		ScheduleChanges: req.ScheduleChanges,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, serializer.Response{Data: rel})
	case errors.Is(err, service.ErrSameRoom):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// GetRelocation godoc
//
//	@Summary		Get relocation
//	@Description	Fetch a relocation with schedule changes, work assignments and court sessions
//	@Tags			relocation
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.RoomRelocation}
//	@Router			/relocation/{relocation_id} [get]
func (h *RelocationHandler) GetRelocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("relocation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	rel, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.Err(http.StatusNotFound, "relocation not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: rel})
}

type ListRelocationsReq struct {
	Status string `form:"status" json:"status"`
	Limit  int    `form:"limit,default=20" json:"limit" binding:"min=0,max=200"`
	Offset int    `form:"offset,default=0" json:"offset" binding:"min=0"`
}

// ListRelocations godoc
//
//	@Summary		List relocations
//	@Tags			relocation
//	@Produce		json
//	@Param			status	query	string	false	"Filter by status"
//	@Param			limit	query	integer	false	"Page size, default 20. Max 200."
//	@Param			offset	query	integer	false	"Page offset"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/relocation [get]
func (h *RelocationHandler) ListRelocations(c *gin.Context) {
	req := ListRelocationsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), req.Status, req.Limit, req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"items": items, "total": total}})
}

func (h *RelocationHandler) transition(c *gin.Context, do func(*gin.Context, uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("relocation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := do(c, id); err != nil {
		if errors.Is(err, service.ErrIllegalTransition) {
			c.JSON(http.StatusConflict, serializer.ConflictErr(err.Error(), err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// ActivateRelocation godoc
//
//	@Summary		Activate relocation
//	@Description	scheduled -> active; schedule changes follow
//	@Tags			relocation
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.RoomRelocation}
//	@Router			/relocation/{relocation_id}/activate [post]
func (h *RelocationHandler) ActivateRelocation(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id uuid.UUID) error {
		rel, err := h.svc.Activate(c.Request.Context(), id)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, serializer.Response{Data: rel})
		return nil
	})
}

// CompleteRelocation godoc
//
//	@Summary		Complete relocation
//	@Description	active -> completed; stamps the actual end date and closes schedule changes
//	@Tags			relocation
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.RoomRelocation}
//	@Router			/relocation/{relocation_id}/complete [post]
func (h *RelocationHandler) CompleteRelocation(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id uuid.UUID) error {
		rel, err := h.svc.Complete(c.Request.Context(), id)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, serializer.Response{Data: rel})
		return nil
	})
}

// CancelRelocation godoc
//
//	@Summary		Cancel relocation
//	@Description	scheduled|active -> cancelled; cascades to open schedule changes
//	@Tags			relocation
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.RoomRelocation}
//	@Router			/relocation/{relocation_id}/cancel [post]
func (h *RelocationHandler) CancelRelocation(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id uuid.UUID) error {
		rel, err := h.svc.Cancel(c.Request.Context(), id)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, serializer.Response{Data: rel})
		return nil
	})
}

// ListScheduleChanges godoc
//
//	@Summary		List schedule changes of a relocation
//	@Tags			relocation
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.ScheduleChange}
//	@Router			/relocation/{relocation_id}/schedule_change [get]
func (h *RelocationHandler) ListScheduleChanges(c *gin.Context) {
	relocationID, err := uuid.Parse(c.Param("relocation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.changes.ListByRelocation(c.Request.Context(), relocationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// ListAllScheduleChanges godoc
//
//	@Summary		List schedule changes
//	@Description	Schedule changes across all relocations, optionally filtered by status
//	@Tags			relocation
//	@Produce		json
//	@Param			status	query	string	false	"Filter by status"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.ScheduleChange}
//	@Router			/schedule_change [get]
func (h *RelocationHandler) ListAllScheduleChanges(c *gin.Context) {
	out, err := h.changes.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type WorkAssignmentReq struct {
	Task      string  `json:"task" binding:"required"`
	Worker    *string `json:"worker"`
	Crew      *string `json:"crew"`
	WorkDate  string  `json:"work_date" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
}

// AddWorkAssignment godoc
//
//	@Summary		Add work assignment
//	@Description	Schedule a unit of work under a relocation; times are HH:MM
//	@Tags			relocation
//	@Accept			json
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.WorkAssignment}
//	@Router			/relocation/{relocation_id}/work [post]
func (h *RelocationHandler) AddWorkAssignment(c *gin.Context) {
	relocationID, err := uuid.Parse(c.Param("relocation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	var req WorkAssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	workDate, err := parseDate(req.WorkDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("work_date must be YYYY-MM-DD", err))
		return
	}

	w, err := h.svc.AddWorkAssignment(c.Request.Context(), service.WorkAssignmentInput{
		RelocationID: relocationID,
		Task:         req.Task,
		Worker:       req.Worker,
		Crew:         req.Crew,
		WorkDate:     workDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, serializer.Response{Data: w})
	case errors.Is(err, service.ErrBadTimeRange):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

type CompleteWorkReq struct {
	CompletionNotes string `json:"completion_notes" binding:"required"`
}

// UpdateWorkStatus godoc
//
//	@Summary		Update work assignment status
//	@Description	Actions: start, complete (requires completion_notes), cancel
//	@Tags			relocation
//	@Accept			json
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Param			work_id			path	string	true	"Work assignment ID"	Format(uuid)
//	@Param			action			path	string	true	"start | complete | cancel"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.WorkAssignment}
//	@Router			/relocation/{relocation_id}/work/{work_id}/{action} [post]
func (h *RelocationHandler) UpdateWorkStatus(c *gin.Context) {
	workID, err := uuid.Parse(c.Param("work_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ctx := c.Request.Context()
	var w *model.WorkAssignment
	switch c.Param("action") {
	case "start":
		w, err = h.svc.StartWork(ctx, workID)
	case "complete":
		var req CompleteWorkReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("completion_notes is required", err))
			return
		}
		w, err = h.svc.CompleteWork(ctx, workID, req.CompletionNotes)
	case "cancel":
		w, err = h.svc.CancelWork(ctx, workID)
	default:
		c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown work action", nil))
		return
	}
	h.respondWork(c, w, err)
}

func (h *RelocationHandler) respondWork(c *gin.Context, w *model.WorkAssignment, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, serializer.Response{Data: w})
	case errors.Is(err, service.ErrIllegalTransition):
		c.JSON(http.StatusConflict, serializer.ConflictErr(err.Error(), err))
	case errors.Is(err, service.ErrCompletionNotesRequired):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

type CourtSessionReq struct {
	SessionDate string  `json:"session_date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	SessionType string  `json:"session_type"`
	Judge       *string `json:"judge"`
	Notes       *string `json:"notes"`
}

// AddCourtSession godoc
//
//	@Summary		Add court session
//	@Description	Record a blackout window in the temporary room; times are HH:MM
//	@Tags			relocation
//	@Accept			json
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CourtSession}
//	@Router			/relocation/{relocation_id}/session [post]
func (h *RelocationHandler) AddCourtSession(c *gin.Context) {
	relocationID, err := uuid.Parse(c.Param("relocation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	var req CourtSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	sessionDate, err := parseDate(req.SessionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("session_date must be YYYY-MM-DD", err))
		return
	}

	cs, err := h.svc.AddCourtSession(c.Request.Context(), service.CourtSessionInput{
		RelocationID: relocationID,
		SessionDate:  sessionDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		SessionType:  req.SessionType,
		Judge:        req.Judge,
		Notes:        req.Notes,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, serializer.Response{Data: cs})
	case errors.Is(err, service.ErrBadTimeRange):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// DeleteCourtSession godoc
//
//	@Summary		Delete court session
//	@Tags			relocation
//	@Produce		json
//	@Param			relocation_id	path	string	true	"Relocation ID"		Format(uuid)
//	@Param			session_id		path	string	true	"Court session ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/relocation/{relocation_id}/session/{session_id} [delete]
func (h *RelocationHandler) DeleteCourtSession(c *gin.Context) {
	relocationID, err := uuid.Parse(c.Param("relocation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeleteCourtSession(c.Request.Context(), relocationID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type AvailabilityReq struct {
	StartDate string `form:"start_date" json:"start_date" binding:"required"`
	EndDate   string `form:"end_date" json:"end_date" binding:"required"`
}

func (h *RelocationHandler) availabilityRange(c *gin.Context) (uuid.UUID, time.Time, time.Time, bool) {
	roomID, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return uuid.Nil, time.Time{}, time.Time{}, false
	}
	req := AvailabilityReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return uuid.Nil, time.Time{}, time.Time{}, false
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("start_date must be YYYY-MM-DD", err))
		return uuid.Nil, time.Time{}, time.Time{}, false
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("end_date must be YYYY-MM-DD", err))
		return uuid.Nil, time.Time{}, time.Time{}, false
	}
	return roomID, start, end, true
}

// RoomAvailability godoc
//
//	@Summary		Room availability
//	@Description	Hourly availability of a room per day over a date range
//	@Tags			relocation
//	@Produce		json
//	@Param			room_id		path	string	true	"Room ID"	Format(uuid)
//	@Param			start_date	query	string	true	"Range start, YYYY-MM-DD"
//	@Param			end_date	query	string	true	"Range end, YYYY-MM-DD"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.DayAvailability}
//	@Router			/room/{room_id}/availability [get]
func (h *RelocationHandler) RoomAvailability(c *gin.Context) {
	roomID, start, end, ok := h.availabilityRange(c)
	if !ok {
		return
	}

	out, err := h.avail.RoomAvailability(c.Request.Context(), roomID, start, end)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, serializer.Response{Data: out})
	case errors.Is(err, service.ErrBadDateRange), errors.Is(err, service.ErrDateRangeTooWide):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// RoomConflicts godoc
//
//	@Summary		Room conflicts
//	@Description	Work assignments overlapping court sessions in a room over a date range
//	@Tags			relocation
//	@Produce		json
//	@Param			room_id		path	string	true	"Room ID"	Format(uuid)
//	@Param			start_date	query	string	true	"Range start, YYYY-MM-DD"
//	@Param			end_date	query	string	true	"Range end, YYYY-MM-DD"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.WorkSessionConflict}
//	@Router			/room/{room_id}/conflicts [get]
func (h *RelocationHandler) RoomConflicts(c *gin.Context) {
	roomID, start, end, ok := h.availabilityRange(c)
	if !ok {
		return
	}

	out, err := h.avail.RoomConflicts(c.Request.Context(), roomID, start, end)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, serializer.Response{Data: out})
	case errors.Is(err, service.ErrBadDateRange), errors.Is(err, service.ErrDateRangeTooWide):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
