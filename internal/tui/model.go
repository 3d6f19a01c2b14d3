package tui

import (
	"os"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	"geomap/internal/geom"
	"geomap/internal/ingest"
)

// Options wires the model to the ingestion pipeline.
type Options struct {
	Ingester     *ingest.Ingester
	Logger       zerolog.Logger
	CacheEntries int
	Dir          string // starting directory for the file list; cwd when empty
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	keys        keyMap
	help        help.Model

	zoom    float64
	offsetX int
	offsetY int

	status string

	in    *ingest.Ingester
	cache *resultCache
	log   zerolog.Logger

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	result       *ingest.Result
	fc           *geojson.FeatureCollection
	points       [][2]float64
	pointFeature []int
	bbox         geom.BBox
	lines        [][][2]float64
	polygons     [][][][2]float64

	// map viewport size, kept current by resize
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(o Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		keys:        defaultKeys(),
		help:        help.New(),
		zoom:        1.0,
		status:      "geomap ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		in:          o.Ingester,
		cache:       newResultCache(o.CacheEntries),
		log:         o.Logger,
		cwd:         o.Dir,
	}
	if m.in == nil {
		m.in = ingest.New(ingest.WithLogger(o.Logger))
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTI*, GEOMETRYCOLLECTION). Enter renders; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(o Options, path string) Model {
	m := New(o)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Result returns the currently loaded ingestion result, if any.
func (m Model) Result() *ingest.Result { return m.result }
