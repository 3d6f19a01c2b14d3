package tui

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int // map origin in terminal cells
	mapW, mapH         int
}

func (m Model) layout() layout {
	l := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.mapW = max(10, l.contentW-l.sidebarW-1)
	l.mapH = l.contentH
	return l
}

// mapCell converts a terminal position to a cell inside the map viewport.
func (l layout) mapCell(x, y int) (int, int, bool) {
	cx, cy := x-l.mapX, y-l.mapY
	if cx < 0 || cy < 0 || cx >= l.mapW || cy >= l.mapH {
		return 0, 0, false
	}
	return cx, cy, true
}

// resize records the map viewport and fits the file list to the sidebar.
func (m *Model) resize() {
	l := m.layout()
	m.mapW, m.mapH = max(8, l.mapW), max(4, l.mapH)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}
}
