package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/autolot/internal/adapter"
	"github.com/MKhiriev/autolot/internal/config"
	myHTTP "github.com/MKhiriev/autolot/internal/handler/http"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/server"
	"github.com/MKhiriev/autolot/internal/service"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("autolot-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	images, err := adapter.NewHTTPImageStore(cfg.ImageHost, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating image store")
	}

	cleanupWorker := workers.NewImageCleanupWorker(images, log)
	background := workers.NewWorkers(cleanupWorker)
	background.Start(ctx)
	defer background.Stop()

	services := service.NewServices(*storages, images, cleanupWorker, *cfg, log)

	handler := myHTTP.NewHandler(services, cfg.Server, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
