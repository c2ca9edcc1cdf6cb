package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/autolot/internal/client"
	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("autolot-admin")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api, err := client.NewAPIClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create api client")
	}

	ui := tui.New(api, cfg.App, log)

	if err = ui.Run(context.Background()); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		log.Fatal().Err(err).Msg("admin panel error")
	}
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
