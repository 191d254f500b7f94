package bootstrap

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/youngpro718/nysc-facilities-sub003/internal/config"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/blob"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/cache"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/db"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/extract"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/logger"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/queue"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/handler"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.Occupant{},
				&model.Room{},
				&model.Key{},
				&model.RoomAssignment{},
				&model.KeyAssignment{},
				&model.RoomRelocation{},
				&model.ScheduleChange{},
				&model.WorkAssignment{},
				&model.CourtSession{},
				&model.CourtTerm{},
				&model.TermAssignment{},
				&model.Notification{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})
	do.Provide(inj, func(i *do.Injector) (*cache.QueryCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb := do.MustInvoke[*redis.Client](i)
		ttl := time.Duration(cfg.Availability.CacheTTLSec) * time.Second
		return cache.NewQueryCache(rdb, ttl), nil
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.Provide(inj, func(i *do.Injector) (*queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		return queue.NewPublisher(conn, cfg.RabbitMQ.Queue, do.MustInvoke[*zap.Logger](i))
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// Extraction service
	do.Provide(inj, func(i *do.Injector) (*extract.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return extract.NewClient(cfg, do.MustInvoke[*zap.Logger](i)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.OccupantRepo, error) {
		return repo.NewOccupantRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.RoomRepo, error) {
		return repo.NewRoomRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.KeyRepo, error) {
		return repo.NewKeyRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.RoomAssignmentRepo, error) {
		return repo.NewRoomAssignmentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.RelocationRepo, error) {
		return repo.NewRelocationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ScheduleChangeRepo, error) {
		return repo.NewScheduleChangeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TermRepo, error) {
		return repo.NewTermRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.OccupantService, error) {
		return service.NewOccupantService(do.MustInvoke[repo.OccupantRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.LedgerService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewLedgerService(
			do.MustInvoke[repo.OccupantRepo](i),
			do.MustInvoke[repo.RoomRepo](i),
			do.MustInvoke[repo.KeyRepo](i),
			do.MustInvoke[repo.RoomAssignmentRepo](i),
			cfg.Ledger.SpareKeyCap,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NotifyService, error) {
		return service.NewNotifyService(
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[*queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.RelocationService, error) {
		return service.NewRelocationService(
			do.MustInvoke[repo.RelocationRepo](i),
			do.MustInvoke[*cache.QueryCache](i),
			do.MustInvoke[service.NotifyService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AvailabilityService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewAvailabilityService(
			do.MustInvoke[repo.RelocationRepo](i),
			do.MustInvoke[*cache.QueryCache](i),
			cfg.Availability.DayStartHour,
			cfg.Availability.DayEndHour,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ReportService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewReportService(
			do.MustInvoke[repo.OccupantRepo](i),
			do.MustInvoke[repo.RoomRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			time.Duration(cfg.S3.PresignExpireSec)*time.Second,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ImporterService, error) {
		return service.NewImporterService(
			do.MustInvoke[repo.OccupantRepo](i),
			do.MustInvoke[repo.TermRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*extract.Client](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.OccupantHandler, error) {
		return handler.NewOccupantHandler(
			do.MustInvoke[service.OccupantService](i),
			do.MustInvoke[service.LedgerService](i),
			do.MustInvoke[service.ImporterService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.LedgerHandler, error) {
		return handler.NewLedgerHandler(do.MustInvoke[service.LedgerService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FacilityHandler, error) {
		return handler.NewFacilityHandler(
			do.MustInvoke[repo.RoomRepo](i),
			do.MustInvoke[repo.KeyRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.RelocationHandler, error) {
		return handler.NewRelocationHandler(
			do.MustInvoke[service.RelocationService](i),
			do.MustInvoke[service.AvailabilityService](i),
			do.MustInvoke[repo.ScheduleChangeRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ReportHandler, error) {
		return handler.NewReportHandler(do.MustInvoke[service.ReportService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TermHandler, error) {
		return handler.NewTermHandler(
			do.MustInvoke[service.ImporterService](i),
			do.MustInvoke[repo.TermRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotifyService](i)), nil
	})

	return inj
}
