package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/autolot/models"
)

type leadsModel struct {
	leads   []models.Lead
	idx     int
	loading bool
	status  string
	lastErr error
}

func (m leadsModel) current() (models.Lead, bool) {
	if len(m.leads) == 0 || m.idx < 0 || m.idx >= len(m.leads) {
		return models.Lead{}, false
	}
	return m.leads[m.idx], true
}

func (m leadsModel) View() string {
	out := titleStyle.Render("Leads") + "\n\n"

	switch {
	case m.loading:
		out += "Loading...\n"
	case len(m.leads) == 0:
		out += "No leads\n"
	default:
		for i, lead := range m.leads {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}

			line := fmt.Sprintf("%s  %s", lead.CreatedAt.Format("2006-01-02 15:04"), lead.Name)
			if lead.Phone != "" {
				line += "  " + lead.Phone
			}
			if lead.VehicleTitle != "" {
				line += "  re: " + lead.VehicleTitle
			}
			out += cursor + line + "\n"

			if i == m.idx && strings.TrimSpace(lead.Message) != "" {
				out += "    " + statusStyle.Render(truncate(lead.Message, 100)) + "\n"
			}
		}
	}

	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status) + "\n"
	}
	if m.lastErr != nil {
		out += "\n" + errorStyle.Render("Error: "+m.lastErr.Error()) + "\n"
	}

	out += "\n" + helpStyle.Render("d delete  r refresh  esc back  q quit")
	return appStyle.Render(out)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
