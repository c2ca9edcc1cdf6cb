// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel renders the single masked password prompt. Submission
// dispatches an async login command; the result lands back as a
// loginDoneMsg handled by appModel.
type loginModel struct {
	input      textinput.Model
	submitting bool
	errMsg     string
}

func newLoginModel() loginModel {
	input := textinput.New()
	input.Placeholder = "admin password"
	input.CharLimit = 256
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return loginModel{input: input}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	out := titleStyle.Render("autolot admin") + "\n\n"
	out += "Password:\n" + m.input.View() + "\n"

	if m.submitting {
		out += "\nSigning in...\n"
	}
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render(m.errMsg) + "\n"
	}

	out += "\n" + helpStyle.Render("enter sign in  ctrl+c quit")
	return appStyle.Render(out)
}
