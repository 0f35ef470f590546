package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/client"
	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/session"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/tui"
	"github.com/MKhiriev/airguard-admin/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewClientLogger("airguard-console")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	sess := session.New(localStorage.SessionRepository, log)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, sess, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	sched := poller.NewScheduler(ctx, log)
	bus := invalidation.NewBus(log)
	services := service.NewClientServices(cfg, sess, serverAdapter, sched, bus, log)

	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, sched, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
