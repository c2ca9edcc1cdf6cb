// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal admin panel: login, inventory
// management with image-aware vehicle forms, and lead review.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/autolot/internal/client"
	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit reports that the admin quit the program from the UI.
var ErrUserQuit = errors.New("user quit")

// TUI wires the API client into the Bubble Tea program.
type TUI struct {
	api        *client.APIClient
	fetcher    *client.InventoryFetcher
	normalizer client.Normalizer

	publicBaseURL string

	logger *logger.Logger
}

// New creates the admin TUI.
func New(api *client.APIClient, appCfg config.ClientApp, logger *logger.Logger) *TUI {
	return &TUI{
		api:           api,
		fetcher:       &client.InventoryFetcher{},
		normalizer:    client.Normalizer{UploadsRoot: appCfg.UploadsRoot},
		publicBaseURL: strings.TrimRight(appCfg.PublicBaseURL, "/"),
		logger:        logger,
	}
}

// Run starts the admin panel and blocks until the admin quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}
