package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geomap/internal/geom"
	"geomap/internal/ingest"
)

type fileItem struct {
	title, desc string
	path        string
	isDir       bool
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !ingest.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// minSpan keeps a drawable extent, in degrees, around single points.
const minSpan = 0.01

// loadPath ingests a file and makes it the current dataset. On failure the
// previous dataset stays on screen and the error goes to the status line.
func (m *Model) loadPath(p string) {
	name := filepath.Base(p)
	if !ingest.Supported(name) {
		m.status = "unsupported file: " + name
		return
	}
	data, err := os.ReadFile(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Warn().Err(err).Str("path", p).Msg("read failed")
		return
	}
	res, hit, err := m.cache.ingest(m.in, name, data)
	if err != nil {
		m.status = "load error: " + err.Error()
		kind, _ := ingest.KindOf(err)
		m.log.Warn().Err(err).Str("path", p).Str("kind", string(kind)).Msg("ingest failed")
		return
	}
	if err := m.setResult(res); err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.log.Info().
		Str("path", p).
		Int("features", len(res.Data.Features)).
		Bool("cached", hit).
		Msg("loaded")
	m.status = "loaded: " + name + "  " + m.detection() + "  " + m.counts()
	m.syncAttrs()
}

// setResult swaps in a new dataset and resets the view.
func (m *Model) setResult(res *ingest.Result) error {
	d, err := geom.FromCollection(res.Data)
	if err != nil {
		return err
	}
	m.result = res
	m.fc = res.Data
	m.points, m.lines, m.polygons, m.bbox = d.Points, d.Lines, d.Polygons, d.BBox.Padded(minSpan)
	m.pointFeature = d.PointFeature
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	// prefer polys > lines > points for visibility
	m.showPolys = len(m.polygons) > 0
	m.showLines = len(m.lines) > 0 && !m.showPolys
	m.showPoints = len(m.points) > 0 && !m.showPolys
	return nil
}

func (m Model) detection() string {
	if m.result == nil {
		return ""
	}
	if m.result.Native() {
		return "geometry: native"
	}
	return fmt.Sprintf("lat=%s lon=%s", m.result.DetectedLat, m.result.DetectedLon)
}

func (m Model) counts() string {
	return fmt.Sprintf("counts: pts=%d ls=%d poly=%d", len(m.points), len(m.lines), len(m.polygons))
}

// syncAttrs keeps an open attributes table in step with the dataset.
func (m *Model) syncAttrs() {
	if !m.showAttrs {
		return
	}
	cols, rows := m.buildAttributes()
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	m.refreshAttrsFromCurrent()
}
