// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/autolot/internal/client"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// vehicleFormFields lists the editable vehicle fields, in render order,
// under their canonical snake_case names.
var vehicleFormFields = []struct {
	name  string
	label string
}{
	{"year", "Year"},
	{"make", "Make"},
	{"model", "Model"},
	{"trim", "Trim"},
	{"price", "Price"},
	{"mileage", "Mileage"},
	{"exterior_color", "Exterior color"},
	{"interior_color", "Interior color"},
	{"fuel_type", "Fuel type"},
	{"transmission", "Transmission"},
	{"engine", "Engine"},
	{"drivetrain", "Drivetrain"},
	{"description", "Description"},
	{"status", "Status"},
}

// Indexes of the two image inputs appended after the vehicle fields.
var (
	formImageFilesIdx = len(vehicleFormFields)
	formImageURLsIdx  = len(vehicleFormFields) + 1
	formInputCount    = len(vehicleFormFields) + 2
)

// formModel is one vehicle create/edit session. Typing into either image
// input marks the session's images as touched; an edit that never reaches
// them sends no image data at all, so unrelated edits cannot wipe a
// vehicle's pictures.
type formModel struct {
	inputs []textinput.Model
	focus  int

	editing   bool
	vehicleID int64

	imagesTouched bool
	submitting    bool
	errMsg        string
}

// newFormModel builds the form, pre-filled from row when editing.
func newFormModel(row client.VehicleRow) formModel {
	inputs := make([]textinput.Model, formInputCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		inputs[i].CharLimit = 512
	}
	inputs[formImageFilesIdx].Placeholder = "/path/a.jpg, /path/b.jpg"
	inputs[formImageURLsIdx].Placeholder = "https://... , https://..."
	inputs[0].Focus()

	m := formModel{inputs: inputs}
	if row == nil {
		return m
	}

	m.editing = true
	m.vehicleID = row.ID()
	for i, field := range vehicleFormFields {
		switch field.name {
		case "year", "price", "mileage":
			if v := row.Int64(field.name); v > 0 {
				m.inputs[i].SetValue(fmt.Sprintf("%d", v))
			}
		default:
			m.inputs[i].SetValue(row.String(field.name))
		}
	}
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	onImageInput := m.focus == formImageFilesIdx || m.focus == formImageURLsIdx
	if onImageInput && m.inputs[m.focus].Value() != before {
		m.imagesTouched = true
	}

	return m, cmd
}

func (m *formModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *formModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// toFormSession collects the form into a client.FormSession, reading the
// listed image files from disk.
func (m formModel) toFormSession() (client.FormSession, error) {
	form := client.FormSession{
		Fields:        make(map[string]string, len(vehicleFormFields)),
		ImagesTouched: m.imagesTouched,
	}

	for i, field := range vehicleFormFields {
		form.Fields[field.name] = strings.TrimSpace(m.inputs[i].Value())
	}

	for _, path := range splitList(m.inputs[formImageFilesIdx].Value()) {
		data, err := os.ReadFile(path)
		if err != nil {
			return client.FormSession{}, fmt.Errorf("read image file: %w", err)
		}
		form.Files = append(form.Files, client.Upload{
			Filename: filepath.Base(path),
			Data:     data,
		})
	}

	form.ImageURLs = splitList(m.inputs[formImageURLsIdx].Value())

	return form, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (m formModel) View() string {
	title := "New vehicle"
	if m.editing {
		title = fmt.Sprintf("Edit vehicle #%d", m.vehicleID)
	}
	out := titleStyle.Render(title) + "\n\n"

	for i, field := range vehicleFormFields {
		out += fmt.Sprintf("%-15s %s\n", field.label, m.inputs[i].View())
	}

	imagesLabel := "Image files"
	if m.imagesTouched {
		imagesLabel = "Image files *"
	}
	out += fmt.Sprintf("%-15s %s\n", imagesLabel, m.inputs[formImageFilesIdx].View())
	out += fmt.Sprintf("%-15s %s\n", "Image URLs", m.inputs[formImageURLsIdx].View())

	if m.submitting {
		out += "\nSaving...\n"
	}
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render(m.errMsg) + "\n"
	}

	out += "\n" + helpStyle.Render("tab next  shift+tab prev  enter save  esc cancel")
	return appStyle.Render(out)
}
