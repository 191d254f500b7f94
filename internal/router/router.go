package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/youngpro718/nysc-facilities-sub003/internal/config"
	"github.com/youngpro718/nysc-facilities-sub003/internal/middleware"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/handler"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/serializer"
)

type RouterDeps struct {
	Config              *config.Config
	Log                 *zap.Logger
	OccupantHandler     *handler.OccupantHandler
	LedgerHandler       *handler.LedgerHandler
	FacilityHandler     *handler.FacilityHandler
	RelocationHandler   *handler.RelocationHandler
	ReportHandler       *handler.ReportHandler
	TermHandler         *handler.TermHandler
	NotificationHandler *handler.NotificationHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Report aggregates are recomputed at most once a minute per URI.
	reportCache := cache.New(time.Minute, 5*time.Minute)

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.RateLimiter(d.Config.RateLimit.PerSecond, d.Config.RateLimit.Burst))
		v1.Use(middleware.BearerAuth(d.Config))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		occupant := v1.Group("/occupant")
		{
			occupant.GET("", d.OccupantHandler.ListOccupants)
			occupant.POST("", d.OccupantHandler.CreateOccupant)
			occupant.POST("/import", d.OccupantHandler.ImportOccupantsCSV)
			occupant.PUT("/bulk_status", d.OccupantHandler.BulkUpdateStatus)

			occupant.GET("/:occupant_id", d.OccupantHandler.GetOccupant)
			occupant.PUT("/:occupant_id", d.OccupantHandler.UpdateOccupant)
			occupant.DELETE("/:occupant_id", d.OccupantHandler.DeleteOccupant)
		}

		room := v1.Group("/room")
		{
			room.GET("", d.FacilityHandler.ListRooms)
			room.GET("/:room_id", d.FacilityHandler.GetRoom)

			room.GET("/:room_id/assignment", d.LedgerHandler.ListRoomAssignments)
			room.POST("/:room_id/assignment", d.LedgerHandler.AssignRoom)
			room.DELETE("/:room_id/assignment/:assignment_id", d.LedgerHandler.UnassignRoom)

			room.GET("/:room_id/availability", d.RelocationHandler.RoomAvailability)
			room.GET("/:room_id/conflicts", d.RelocationHandler.RoomConflicts)
		}

		key := v1.Group("/key")
		{
			key.GET("", d.FacilityHandler.ListKeys)
			key.POST("", d.FacilityHandler.CreateKey)

			key.GET("/:key_id/assignment", d.LedgerHandler.ListKeyAssignments)
			key.POST("/:key_id/assignment", d.LedgerHandler.AssignKey)
			key.POST("/:key_id/assignment/:assignment_id/return", d.LedgerHandler.ReturnKey)
		}

		relocation := v1.Group("/relocation")
		{
			relocation.GET("", d.RelocationHandler.ListRelocations)
			relocation.POST("", d.RelocationHandler.CreateRelocation)
			relocation.GET("/:relocation_id", d.RelocationHandler.GetRelocation)
			relocation.GET("/:relocation_id/schedule_change", d.RelocationHandler.ListScheduleChanges)

			relocation.POST("/:relocation_id/activate", d.RelocationHandler.ActivateRelocation)
			relocation.POST("/:relocation_id/complete", d.RelocationHandler.CompleteRelocation)
			relocation.POST("/:relocation_id/cancel", d.RelocationHandler.CancelRelocation)

			relocation.POST("/:relocation_id/work", d.RelocationHandler.AddWorkAssignment)
			relocation.POST("/:relocation_id/work/:work_id/:action", d.RelocationHandler.UpdateWorkStatus)

			relocation.POST("/:relocation_id/session", d.RelocationHandler.AddCourtSession)
			relocation.DELETE("/:relocation_id/session/:session_id", d.RelocationHandler.DeleteCourtSession)
		}

		report := v1.Group("/report")
		{
			report.Use(middleware.ResponseCache(reportCache, time.Minute))

			report.GET("/occupancy", d.ReportHandler.OccupancyReport)
			report.GET("/departments", d.ReportHandler.DepartmentReport)
			report.GET("/statuses", d.ReportHandler.StatusReport)
			report.GET("/export", d.ReportHandler.ExportReport)
			report.GET("/export/link", d.ReportHandler.ExportReportLink)
		}

		term := v1.Group("/term")
		{
			term.GET("", d.TermHandler.ListTerms)
			term.POST("/import", d.TermHandler.ImportTermSchedule)
			term.GET("/:term_id", d.TermHandler.GetTerm)
		}

		v1.GET("/schedule_change", d.RelocationHandler.ListAllScheduleChanges)

		v1.GET("/notification", d.NotificationHandler.ListNotifications)
	}
	return r
}
