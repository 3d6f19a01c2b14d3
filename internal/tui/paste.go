package tui

import (
	"errors"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"geomap/internal/ingest"
)

// pastedResult wraps a WKT geometry as a one-feature native collection.
func pastedResult(text string) (*ingest.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty")
	}
	g, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(g))
	return &ingest.Result{
		Data:        fc,
		DetectedLat: ingest.NativeGeometry,
		DetectedLon: ingest.NativeGeometry,
	}, nil
}

// renderPasted shows pasted WKT in place of the current dataset.
func (m *Model) renderPasted(text string) {
	res, err := pastedResult(text)
	if err == nil {
		err = m.setResult(res)
	}
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	m.selPath = ""
	m.status = "rendered WKT  " + m.counts()
	m.syncAttrs()
}
