package main

//	@title			Facilities Admin API
//	@version		1.0
//	@description	Courthouse facility administration: occupants, room and key assignments, relocations, reports.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin bearer token (e.g., "Bearer facilities")

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/do"
	"github.com/youngpro718/nysc-facilities-sub003/internal/bootstrap"
	"github.com/youngpro718/nysc-facilities-sub003/internal/config"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/handler"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/service"
	"github.com/youngpro718/nysc-facilities-sub003/internal/router"
	"go.uber.org/zap"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		Log:                 log,
		OccupantHandler:     do.MustInvoke[*handler.OccupantHandler](inj),
		LedgerHandler:       do.MustInvoke[*handler.LedgerHandler](inj),
		FacilityHandler:     do.MustInvoke[*handler.FacilityHandler](inj),
		RelocationHandler:   do.MustInvoke[*handler.RelocationHandler](inj),
		ReportHandler:       do.MustInvoke[*handler.ReportHandler](inj),
		TermHandler:         do.MustInvoke[*handler.TermHandler](inj),
		NotificationHandler: do.MustInvoke[*handler.NotificationHandler](inj),
	})

	// notification dispatcher
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	go func() {
		notify := do.MustInvoke[service.NotifyService](inj)
		conn := do.MustInvoke[*amqp.Connection](inj)
		err := notify.StartDispatcher(dispatchCtx, conn, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Prefetch)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Sugar().Errorw("notification dispatcher stopped", "err", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopDispatch()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
