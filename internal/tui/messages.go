package tui

import (
	"github.com/MKhiriev/autolot/internal/client"
	"github.com/MKhiriev/autolot/models"
)

type loginDoneMsg struct {
	err error
}

type logoutDoneMsg struct{}

// inventoryLoadedMsg carries the fetch sequence tag so the update loop can
// let the fetcher discard stale completions.
type inventoryLoadedMsg struct {
	seq  uint64
	rows []client.VehicleRow
	err  error
}

type vehicleSavedMsg struct {
	err error
}

type vehicleDeletedMsg struct {
	err error
}

type leadsLoadedMsg struct {
	leads []models.Lead
	err   error
}

type leadDeletedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
