package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geomap/internal/geom"
)

const maxColW = 24

// refreshAttrsFromCurrent rebuilds the table columns/rows from the current dataset
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes lays out the field universe of the current dataset, one
// row per feature. Pasted geometry carries no attributes.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.fc == nil {
		return nil, nil
	}
	cols := geom.Fields(m.fc)
	if len(cols) == 0 {
		return nil, nil
	}
	return cols, geom.Table(m.fc, cols)
}

// featureSummary lists the properties of feature i for the inspect popup,
// at most limit lines.
func (m *Model) featureSummary(i, limit int) []string {
	if m.fc == nil || i < 0 || i >= len(m.fc.Features) || m.fc.Features[i] == nil {
		return nil
	}
	props := m.fc.Features[i].Properties
	var out []string
	for _, k := range geom.Fields(m.fc) {
		v, ok := props[k]
		if !ok {
			continue
		}
		if len(out) == limit {
			out = append(out, fmt.Sprintf("… %d more", len(props)-limit))
			break
		}
		out = append(out, truncate(fmt.Sprintf("%s: %s", k, geom.FormatValue(v)), 44))
	}
	return out
}
