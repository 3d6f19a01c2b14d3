package tui

import (
	"strings"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if m.bbox.Empty() {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

func (m Model) renderAsciiMap(w, h int) string {
	cv := newCanvas(w, h)

	project := func(pts [][2]float64) [][2]int {
		out := make([][2]int, 0, len(pts))
		for _, p := range pts {
			if mx, my, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
				out = append(out, [2]int{mx, my})
			}
		}
		return out
	}

	// Polygons: fill the outer ring, then outline every ring. Holes are not cut.
	if m.showPolys {
		for _, poly := range m.polygons {
			for i, ring := range poly {
				r := project(ring)
				if len(r) < 3 {
					continue
				}
				if i == 0 {
					cv.fill(r)
				}
				cv.polyline(r, true)
			}
		}
	}

	// Vertices of lines and polygons are also points; only plot bare point datasets.
	if m.showPoints && len(m.lines) == 0 && len(m.polygons) == 0 {
		for _, p := range project(m.points) {
			cv.set(p[0], p[1])
		}
	}

	if m.showLines {
		for _, ls := range m.lines {
			cv.polyline(project(ls), false)
		}
	}

	rows := cv.rows()
	lines := make([]string, len(rows))
	for y, r := range rows {
		cx := m.hoverMicX / 2
		if m.hovering && y == m.hoverMicY/4 && cx >= 0 && cx < len(r) {
			lines[y] = string(r[:cx]) + hoverMark + string(r[cx+1:])
			continue
		}
		lines[y] = string(r)
	}
	return strings.Join(lines, "\n")
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if m.bbox.Empty() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	if m.bbox.Empty() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// inspectNearest finds the point closest to the viewport center and returns its index.
func (m Model) inspectNearest() (int, bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	best := -1
	for i, p := range m.points {
		sx, sy, ok := m.screenXY(p[0], p[1], w, h)
		if !ok {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		if d := dx*dx + dy*dy; d < bestD {
			bestD = d
			best = i
		}
	}
	return best, best >= 0
}
