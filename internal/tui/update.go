package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	maxZoom  = 64
	minZoom  = 0.05
	zoomStep = 1.2
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
	case tea.KeyMsg:
		// the list owns the keyboard while filtering
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if cmd, done := m.handleKey(msg); done {
			return m, cmd
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.renderPasted(m.ta.Value())
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a view-mode binding. done is set when the key must not
// also reach the file list.
func (m *Model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, done bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Points):
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case key.Matches(msg, m.keys.Lines):
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case key.Matches(msg, m.keys.Polys):
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polys: %v", m.showPolys)
	case key.Matches(msg, m.keys.Layers):
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints, m.showLines, m.showPolys = !all, !all, !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
	case key.Matches(msg, m.keys.ZoomIn):
		if m.zoom < maxZoom {
			m.zoom *= zoomStep
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case key.Matches(msg, m.keys.ZoomOut):
		if m.zoom > minZoom {
			m.zoom /= zoomStep
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case key.Matches(msg, m.keys.Up):
		m.offsetY--
	case key.Matches(msg, m.keys.Down):
		m.offsetY++
	case key.Matches(msg, m.keys.Left):
		m.offsetX -= 2
	case key.Matches(msg, m.keys.Right):
		m.offsetX += 2
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.resize()
	case key.Matches(msg, m.keys.Open):
		if it, ok := m.l.SelectedItem().(fileItem); ok && m.showSidebar {
			m.loadPath(it.path)
		}
	case key.Matches(msg, m.keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
	case key.Matches(msg, m.keys.Attrs):
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case key.Matches(msg, m.keys.Inspect):
		if idx, ok := m.inspectNearest(); ok {
			m.inspectPopup = strings.Join(m.inspectLines(idx), "\n")
			m.status = "inspect popup"
		} else {
			m.inspectPopup = "no feature nearby"
			m.status = m.inspectPopup
		}
	case key.Matches(msg, m.keys.Close):
		m.inspectPopup = ""
	}
	return nil, false
}

// hover tracks the pointer over the map and snaps the highlight to the
// nearest vertex.
func (m *Model) hover(x, y int) {
	l := m.layout()
	cx, cy, ok := l.mapCell(x, y)
	m.hovering = ok
	if !ok {
		return
	}
	m.hoverCellX, m.hoverCellY = cx, cy
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, l.mapW, l.mapH)

	hx, hy := cx*2, cy*4
	best := 1<<31 - 1
	m.hoverMicX, m.hoverMicY = hx, hy
	// line and polygon vertices are in m.points too
	for _, p := range m.points {
		mx, my, ok := m.screenXYMicro(p[0], p[1], l.mapW, l.mapH)
		if !ok {
			continue
		}
		dx, dy := mx-hx, my-hy
		if d := dx*dx + dy*dy; d < best {
			best = d
			m.hoverMicX, m.hoverMicY = mx, my
		}
	}
}

// inspectLines builds the popup for the point at index idx: dataset
// metadata, the snapped coordinate and the owning feature's properties.
func (m Model) inspectLines(idx int) []string {
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	p := m.points[idx]
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.bbox.MinX, m.bbox.MinY, m.bbox.MaxX, m.bbox.MaxY),
		m.counts(),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", p[0], p[1]),
	}
	if d := m.detection(); d != "" {
		meta = append(meta, "columns: "+d)
	}
	if idx < len(m.pointFeature) {
		fi := m.pointFeature[idx]
		meta = append(meta, fmt.Sprintf("feature #%d", fi+1))
		meta = append(meta, m.featureSummary(fi, 8)...)
	}
	return meta
}
