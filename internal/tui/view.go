package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	header := lipgloss.NewStyle().Width(l.contentW).
		Render(titleStyle.Render(" geomap ─ terminal geospatial viewer "))

	body := m.viewMap(l)
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(l.sidebarW).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	return appStyle.Width(l.contentW).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, m.viewPopup(l), body, m.viewFooter(l)),
	)
}

// viewMap renders the map area: the attribute table, the paste box or the map.
func (m Model) viewMap(l layout) string {
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, l.contentW-6)
		}
		w := min(l.mapW, max(32, colW))
		tbl := m.tbl
		tbl.SetWidth(w - 4)
		tbl.SetHeight(min(l.mapH-2, 20))
		return lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, boxStyle.Width(w).Render(tbl.View()))
	}

	w, h := max(8, l.mapW), max(4, l.mapH)
	var out string
	if m.pasteMode {
		ta := m.ta
		ta.SetWidth(w)
		ta.SetHeight(min(h, 12))
		out = ta.View()
	} else {
		out = m.renderAsciiMap(w, h)
	}
	return lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(out)
}

// viewPopup overlays the inspect popup left of centre, between header and body.
func (m Model) viewPopup(l layout) string {
	if m.inspectPopup == "" || m.showAttrs {
		return ""
	}
	w := max(20, min(48, l.contentW/2))
	return lipgloss.Place(l.contentW, l.contentH, lipgloss.Left, lipgloss.Center,
		popupStyle.MaxWidth(w).Render(m.inspectPopup))
}

func (m Model) viewFooter(l layout) string {
	left := lipgloss.JoinHorizontal(lipgloss.Bottom,
		m.statusStyle().Render(" "+m.status+" "),
		m.renderHelp(),
	)
	coords := ""
	if m.hovering && m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	spacer := max(0, l.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacer+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	return lipgloss.NewStyle().Width(l.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

// statusStyle highlights load and parse failures in the footer.
func (m Model) statusStyle() lipgloss.Style {
	for _, p := range []string{"load error", "wkt error", "unsupported file"} {
		if strings.HasPrefix(m.status, p) {
			return errorStyle
		}
	}
	return dimStyle
}
