// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/autolot/internal/client"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenForm
	screenLeads
)

type confirmTarget int

const (
	confirmNone confirmTarget = iota
	confirmVehicle
	confirmLead
)

type appModel struct {
	ctx context.Context
	tui *TUI

	currentScreen screen

	login loginModel
	list  listModel
	form  formModel
	leads leadsModel

	showConfirm bool
	confirm     confirmModel
	confirmFor  confirmTarget
	confirmID   int64
	quitByUser  bool
}

func newAppModel(ctx context.Context, t *TUI) appModel {
	return appModel{
		ctx:           ctx,
		tui:           t,
		currentScreen: screenLogin,
		login:         newLoginModel(),
		list:          newListModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.login.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.errMsg = msg.err.Error()
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, tea.Batch(m.cmdLoadInventory(), m.list.spinner.Tick)

	case logoutDoneMsg:
		m.currentScreen = screenLogin
		m.login = newLoginModel()
		return m, m.login.Init()

	case inventoryLoadedMsg:
		applied := m.tui.fetcher.Complete(msg.seq, msg.rows, msg.err)
		if applied {
			m.list.loading = false
			m.list.lastErr = nil
			m.list.rows = m.tui.fetcher.Rows()
			m.clampListIndex()
			return m, nil
		}
		if msg.err != nil && msg.seq == m.latestSeqHint() {
			m.list.loading = false
			m.list.lastErr = msg.err
		}
		// Stale completion: a newer fetch owns the screen now.
		return m, nil

	case vehicleSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.errMsg = msg.err.Error()
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		m.list.status = "Saved"
		return m, tea.Batch(m.cmdLoadInventory(), m.list.spinner.Tick, clearStatusAfter())

	case vehicleDeletedMsg:
		if msg.err != nil {
			m.list.lastErr = msg.err
			return m, nil
		}
		m.list.loading = true
		m.list.status = "Deleted"
		return m, tea.Batch(m.cmdLoadInventory(), m.list.spinner.Tick, clearStatusAfter())

	case leadsLoadedMsg:
		m.leads.loading = false
		m.leads.lastErr = msg.err
		if msg.err == nil {
			m.leads.leads = msg.leads
			if m.leads.idx >= len(m.leads.leads) {
				m.leads.idx = max(0, len(m.leads.leads)-1)
			}
		}
		return m, nil

	case leadDeletedMsg:
		if msg.err != nil {
			m.leads.lastErr = msg.err
			return m, nil
		}
		m.leads.loading = true
		m.leads.status = "Deleted"
		return m, tea.Batch(m.cmdLoadLeads(), clearStatusAfter())

	case copiedMsg:
		if msg.err != nil {
			m.list.lastErr = msg.err
		} else {
			m.list.status = "Listing link copied"
		}
		return m, clearStatusAfter()

	case clearStatusMsg:
		m.list.status = ""
		m.leads.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.list.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.list.spinner, cmd = m.list.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.updateFocused(msg)
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showConfirm {
		return m.updateConfirm(msg)
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenList:
		return m.updateList(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenLeads:
		return m.updateLeads(msg)
	}

	return m, nil
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitByUser = true
		return m, tea.Quit
	case "enter":
		if m.login.submitting {
			return m, nil
		}
		password := m.login.input.Value()
		if password == "" {
			m.login.errMsg = "Password is required"
			return m, nil
		}
		m.login.errMsg = ""
		m.login.submitting = true
		return m, m.cmdLogin(password)
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitByUser = true
		return m, tea.Quit
	case "ctrl+l":
		return m, m.cmdLogout()
	case "up", "k":
		if m.list.idx > 0 {
			m.list.idx--
		}
	case "down", "j":
		if m.list.idx < len(m.list.rows)-1 {
			m.list.idx++
		}
	case "r":
		m.list.loading = true
		return m, tea.Batch(m.cmdLoadInventory(), m.list.spinner.Tick)
	case "n":
		m.form = newFormModel(nil)
		m.currentScreen = screenForm
		return m, m.form.Init()
	case "e":
		if row, ok := m.list.current(); ok {
			m.form = newFormModel(row)
			m.currentScreen = screenForm
			return m, m.form.Init()
		}
	case "d":
		if row, ok := m.list.current(); ok {
			m.showConfirm = true
			m.confirm = confirmModel{message: rowTitle(row)}
			m.confirmFor = confirmVehicle
			m.confirmID = row.ID()
		}
	case "c":
		if row, ok := m.list.current(); ok {
			return m, m.cmdCopyListingLink(row.ID())
		}
	case "L":
		m.currentScreen = screenLeads
		m.leads.loading = true
		return m, m.cmdLoadLeads()
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitByUser = true
		return m, tea.Quit
	case "esc":
		m.currentScreen = screenList
		return m, nil
	case "tab":
		m.form.focusNext()
		return m, nil
	case "shift+tab":
		m.form.focusPrev()
		return m, nil
	case "enter":
		if m.form.submitting {
			return m, nil
		}

		form, err := m.form.toFormSession()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}

		m.form.errMsg = ""
		m.form.submitting = true
		if m.form.editing {
			return m, m.cmdUpdateVehicle(m.form.vehicleID, form)
		}
		return m, m.cmdCreateVehicle(form)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m appModel) updateLeads(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitByUser = true
		return m, tea.Quit
	case "esc":
		m.currentScreen = screenList
		return m, nil
	case "up", "k":
		if m.leads.idx > 0 {
			m.leads.idx--
		}
	case "down", "j":
		if m.leads.idx < len(m.leads.leads)-1 {
			m.leads.idx++
		}
	case "r":
		m.leads.loading = true
		return m, m.cmdLoadLeads()
	case "d":
		if lead, ok := m.leads.current(); ok {
			m.showConfirm = true
			m.confirm = confirmModel{message: "lead from " + lead.Name}
			m.confirmFor = confirmLead
			m.confirmID = lead.ID
		}
	}

	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		target, id := m.confirmFor, m.confirmID
		m.showConfirm = false
		m.confirmFor = confirmNone

		switch target {
		case confirmVehicle:
			return m, m.cmdDeleteVehicle(id)
		case confirmLead:
			return m, m.cmdDeleteLead(id)
		}
	case "n", "esc":
		m.showConfirm = false
		m.confirmFor = confirmNone
	}

	return m, nil
}

// updateFocused forwards non-key messages (cursor blink and the like) to the
// screen that owns the focused widget.
func (m appModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScreen {
	case screenLogin:
		m.login, cmd = m.login.update(msg)
	case screenForm:
		m.form, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	if m.showConfirm {
		return appStyle.Render(m.confirm.View())
	}

	switch m.currentScreen {
	case screenLogin:
		return m.login.View()
	case screenList:
		return m.list.view(m.tui.normalizer, m.tui.fetcher.Profile())
	case screenForm:
		return m.form.View()
	case screenLeads:
		return m.leads.View()
	}

	return ""
}

func (m *appModel) clampListIndex() {
	if m.list.idx >= len(m.list.rows) {
		m.list.idx = max(0, len(m.list.rows)-1)
	}
}

// latestSeqHint mirrors the fetcher's notion of the newest fetch for error
// display: only the most recent fetch may surface its failure.
func (m appModel) latestSeqHint() uint64 {
	return m.tui.fetcher.Latest()
}

// ─────────────────────────── commands ───────────────────────────

func (m appModel) cmdLogin(password string) tea.Cmd {
	ctx, api := m.ctx, m.tui.api
	return func() tea.Msg {
		return loginDoneMsg{err: api.Login(ctx, password)}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx, api, log := m.ctx, m.tui.api, m.tui.logger
	return func() tea.Msg {
		if err := api.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("logout request failed")
		}
		return logoutDoneMsg{}
	}
}

func (m appModel) cmdLoadInventory() tea.Cmd {
	ctx, api, fetcher := m.ctx, m.tui.api, m.tui.fetcher
	seq := fetcher.Begin()
	return func() tea.Msg {
		rows, err := api.ListVehicles(ctx)
		return inventoryLoadedMsg{seq: seq, rows: rows, err: err}
	}
}

func (m appModel) cmdCreateVehicle(form client.FormSession) tea.Cmd {
	ctx, api, fetcher := m.ctx, m.tui.api, m.tui.fetcher
	return func() tea.Msg {
		payload := client.BuildPayload(fetcher.Profile(), form)
		_, err := api.CreateVehicle(ctx, payload)
		return vehicleSavedMsg{err: err}
	}
}

func (m appModel) cmdUpdateVehicle(id int64, form client.FormSession) tea.Cmd {
	ctx, api, fetcher := m.ctx, m.tui.api, m.tui.fetcher
	return func() tea.Msg {
		payload := client.BuildPayload(fetcher.Profile(), form)
		return vehicleSavedMsg{err: api.UpdateVehicle(ctx, id, payload)}
	}
}

func (m appModel) cmdDeleteVehicle(id int64) tea.Cmd {
	ctx, api := m.ctx, m.tui.api
	return func() tea.Msg {
		return vehicleDeletedMsg{err: api.DeleteVehicle(ctx, id)}
	}
}

func (m appModel) cmdLoadLeads() tea.Cmd {
	ctx, api := m.ctx, m.tui.api
	return func() tea.Msg {
		leads, err := api.ListLeads(ctx)
		return leadsLoadedMsg{leads: leads, err: err}
	}
}

func (m appModel) cmdDeleteLead(id int64) tea.Cmd {
	ctx, api := m.ctx, m.tui.api
	return func() tea.Msg {
		return leadDeletedMsg{err: api.DeleteLead(ctx, id)}
	}
}

func (m appModel) cmdCopyListingLink(id int64) tea.Cmd {
	base := m.tui.publicBaseURL
	return func() tea.Msg {
		if base == "" {
			return copiedMsg{err: fmt.Errorf("public base URL is not configured")}
		}
		url := fmt.Sprintf("%s/vehicles/%d", base, id)
		return copiedMsg{err: clipboard.WriteAll(url)}
	}
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
