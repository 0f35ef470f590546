package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/handler"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/server"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/workers"
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

	log := logger.NewLogger("airguard-devapi")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("sensor_model", cfg.SensorModel).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, cfg, log)

	if err = services.AuthService.SeedAdmin(ctx, cfg.App.SeedAdminAccountID, cfg.App.SeedAdminPassword); err != nil {
		log.Fatal().Err(err).Msg("error seeding admin account")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(services, cfg, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
