// Package export renders a canonical collection as a self-contained Leaflet
// HTML map.
package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/paulmach/orb/geojson"

	"geomap/internal/geom"
)

// DefaultTitle is used when no title can be derived.
const DefaultTitle = "My Map"

//go:embed map.html.tmpl
var pageSource string

var page = template.Must(template.New("map").Parse(pageSource))

type Options struct {
	Title      string
	Fields     []string // popup fields, in order
	ColorField string   // empty disables coloring and the legend
	Palette    string
	Basemap    string

	// Document, when set, is embedded as the map data instead of fc, so
	// native GeoJSON reaches the page as it was read.
	Document json.RawMessage
}

type pageData struct {
	Title        string
	Data         any
	Fields       []string
	Basemap      Basemap
	Basemaps     map[string]Basemap
	ColorField   string
	ColorFieldJS any
	ColorMapping map[string]string
	Legend       []LegendEntry
}

// WriteHTML writes the map document for fc to w.
func WriteHTML(w io.Writer, fc *geojson.FeatureCollection, opts Options) error {
	if fc == nil {
		return fmt.Errorf("export: nil collection")
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}
	pd := pageData{
		Title:        title,
		Data:         fc,
		Fields:       append([]string{}, opts.Fields...),
		Basemap:      LookupBasemap(opts.Basemap),
		Basemaps:     Basemaps,
		ColorMapping: map[string]string{},
	}
	if len(opts.Document) > 0 {
		pd.Data = opts.Document
	}
	if opts.ColorField != "" {
		pd.ColorField = opts.ColorField
		pd.ColorFieldJS = opts.ColorField
		pd.Legend = ColorMapping(fc, opts.ColorField, opts.Palette)
		for _, e := range pd.Legend {
			pd.ColorMapping[e.Value] = e.Color
		}
	}
	if err := page.Execute(w, pd); err != nil {
		return fmt.Errorf("export: render html: %w", err)
	}
	return nil
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName derives the download name for a map title: every character
// outside [A-Za-z0-9] becomes an underscore, lower-cased, with .html.
func FileName(title string) string {
	return strings.ToLower(unsafeName.ReplaceAllString(title, "_")) + ".html"
}

// TitleFor derives a map title from the part of a file name before its
// first dot.
func TitleFor(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if strings.TrimSpace(base) == "" || base == string(filepath.Separator) {
		return DefaultTitle
	}
	return base
}

// DefaultFields picks the first n fields of the collection's field universe.
func DefaultFields(fc *geojson.FeatureCollection, n int) []string {
	fields := geom.Fields(fc)
	if n >= 0 && len(fields) > n {
		fields = fields[:n]
	}
	return fields
}
