package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

// OccupancyReport godoc
//
//	@Summary		Occupancy report
//	@Description	Room totals, occupied counts and occupancy rate per building
//	@Tags			report
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.BuildingOccupancy}
//	@Router			/report/occupancy [get]
func (h *ReportHandler) OccupancyReport(c *gin.Context) {
	out, err := h.svc.OccupancyByBuilding(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// DepartmentReport godoc
//
//	@Summary		Department distribution
//	@Description	Occupant counts and percentage share per department
//	@Tags			report
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.Share}
//	@Router			/report/departments [get]
func (h *ReportHandler) DepartmentReport(c *gin.Context) {
	out, err := h.svc.DepartmentDistribution(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// StatusReport godoc
//
//	@Summary		Status distribution
//	@Description	Occupant counts and percentage share per status
//	@Tags			report
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.Share}
//	@Router			/report/statuses [get]
func (h *ReportHandler) StatusReport(c *gin.Context) {
	out, err := h.svc.StatusDistribution(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// ExportReport godoc
//
//	@Summary		Export reports
//	@Description	All three reports as one XLSX workbook
//	@Tags			report
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Security		BearerAuth
//	@Success		200	{file}	binary
//	@Router			/report/export [get]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	data, err := h.svc.ExportXLSX(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	filename := fmt.Sprintf("facility-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportReportLink godoc
//
//	@Summary		Export reports as a download link
//	@Description	Archives the XLSX workbook to object storage and returns a pre-signed download URL
//	@Tags			report
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ExportLink}
//	@Router			/report/export/link [get]
func (h *ReportHandler) ExportReportLink(c *gin.Context) {
	out, err := h.svc.ExportDownloadLink(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "export failed", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
