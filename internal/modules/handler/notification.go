package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
)

type NotificationHandler struct {
	svc service.NotifyService
}

func NewNotificationHandler(s service.NotifyService) *NotificationHandler {
	return &NotificationHandler{svc: s}
}

type ListNotificationsReq struct {
	Status string `form:"status" json:"status"`
	Limit  int    `form:"limit,default=50" json:"limit" binding:"min=0,max=200"`
}

// ListNotifications godoc
//
//	@Summary		List notifications
//	@Description	Latest notification rows, optionally filtered by status (pending, sent)
//	@Tags			notification
//	@Produce		json
//	@Param			status	query	string	false	"Filter by status"
//	@Param			limit	query	integer	false	"Page size, default 50. Max 200."
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Notification}
//	@Router			/notification [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	req := ListNotificationsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), req.Status, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
