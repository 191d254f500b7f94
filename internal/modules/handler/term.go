package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
	"gorm.io/gorm"
)

type TermHandler struct {
	importer service.ImporterService
	terms    repo.TermRepo
}

func NewTermHandler(importer service.ImporterService, terms repo.TermRepo) *TermHandler {
	return &TermHandler{importer: importer, terms: terms}
}

// ImportTermSchedule godoc
//
//	@Summary		Import term schedule
//	@Description	Upload a term schedule PDF; extraction is delegated and the result replaces any prior import of the same term
//	@Tags			term
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Term schedule PDF"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CourtTerm}
//	@Router			/term/import [post]
func (h *TermHandler) ImportTermSchedule(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file is required", err))
		return
	}

	term, err := h.importer.ImportTermSchedule(c.Request.Context(), fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "term schedule import failed", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: term})
}

// GetTerm godoc
//
//	@Summary		Get term
//	@Description	Fetch an imported term with its part assignments
//	@Tags			term
//	@Produce		json
//	@Param			term_id	path	string	true	"Term ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CourtTerm}
//	@Router			/term/{term_id} [get]
func (h *TermHandler) GetTerm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("term_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	term, err := h.terms.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.Err(http.StatusNotFound, "term not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: term})
}

// ListTerms godoc
//
//	@Summary		List terms
//	@Tags			term
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.CourtTerm}
//	@Router			/term [get]
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.terms.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: terms})
}
