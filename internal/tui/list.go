package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/autolot/internal/client"
	"github.com/charmbracelet/bubbles/spinner"
)

type listModel struct {
	rows    []client.VehicleRow
	idx     int
	loading bool
	spinner spinner.Model
	status  string
	lastErr error
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s, loading: true}
}

func (m listModel) current() (client.VehicleRow, bool) {
	if len(m.rows) == 0 || m.idx < 0 || m.idx >= len(m.rows) {
		return nil, false
	}
	return m.rows[m.idx], true
}

func rowTitle(row client.VehicleRow) string {
	parts := make([]string, 0, 4)
	if year := row.Int64("year"); year > 0 {
		parts = append(parts, fmt.Sprintf("%d", year))
	}
	for _, field := range []string{"make", "model", "trim"} {
		if v := strings.TrimSpace(row.String(field)); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("vehicle #%d", row.ID())
	}
	return strings.Join(parts, " ")
}

func statusBadge(status string) string {
	switch status {
	case "sold":
		return "[sold]"
	case "pending":
		return "[pending]"
	default:
		return ""
	}
}

func (m listModel) view(n client.Normalizer, profile client.SchemaProfile) string {
	header := titleStyle.Render("autolot inventory")
	if m.loading {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	switch {
	case m.loading && len(m.rows) == 0:
		out += "Loading...\n"
	case len(m.rows) == 0:
		out += "No vehicles yet\n"
	default:
		for i, row := range m.rows {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}

			line := rowTitle(row)
			if price := row.Int64("price"); price > 0 {
				line += fmt.Sprintf("  $%d", price)
			}
			if imgs := n.Normalize(row.RawImages(profile)); len(imgs) > 0 {
				line += fmt.Sprintf("  (%d img)", len(imgs))
			}
			if badge := statusBadge(row.String("status")); badge != "" {
				line += "  " + badge
			}

			out += cursor + line + "\n"
		}
	}

	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status) + "\n"
	}
	if m.lastErr != nil {
		out += "\n" + errorStyle.Render("Error: "+m.lastErr.Error()) + "\n"
	}

	out += "\n" + helpStyle.Render("n new  e edit  d delete  c copy link  r refresh  L leads  q quit")
	return appStyle.Render(out)
}
