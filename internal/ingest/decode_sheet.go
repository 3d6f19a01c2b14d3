package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	zipMagic  = []byte("PK\x03\x04")
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// decodeSheet reads the first worksheet of a workbook. OOXML containers go
// through excelize whatever their extension; BIFF workbooks through xls.
func decodeSheet(data []byte, format Format) (Rows, error) {
	var (
		grid [][]any
		err  error
	)
	switch {
	case format == FormatXLSX || bytes.HasPrefix(data, zipMagic):
		grid, err = readXLSX(data)
	case bytes.HasPrefix(data, ole2Magic):
		grid, err = readXLS(data)
	default:
		return Rows{}, newError(DecodeFailure, "unrecognized spreadsheet container", nil)
	}
	if err != nil {
		return Rows{}, newError(DecodeFailure, "read workbook", err)
	}
	return gridRows(grid), nil
}

func readXLSX(data []byte) ([][]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	grid := make([][]any, len(rows))
	for r, row := range rows {
		cells := make([]any, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, name)
			if err != nil {
				return nil, err
			}
			cells[c] = xlsxValue(raw, typ)
		}
		grid[r] = cells
	}
	return grid, nil
}

// xlsxValue types a raw cell. Numeric cells usually carry no explicit type.
func xlsxValue(raw string, typ excelize.CellType) any {
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return raw
}

func readXLS(data []byte) (grid [][]any, err error) {
	// the BIFF reader panics on some truncated streams
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("corrupt xls workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]any, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			raw := row.Col(c)
			if raw == "" {
				continue
			}
			// BIFF cells come back pre-formatted; numbers are recovered by parsing
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				cells[c] = f
			} else {
				cells[c] = raw
			}
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// gridRows turns a cell grid into records. The first non-empty row is the
// header; empty cells become absent keys and empty rows are skipped.
func gridRows(grid [][]any) Rows {
	hdr := -1
	width := 0
	for i, row := range grid {
		if hdr < 0 && !blankRow(row) {
			hdr = i
		}
		width = max(width, len(row))
	}
	if hdr < 0 {
		return Rows{}
	}

	names := make([]string, width)
	for c, v := range grid[hdr] {
		if v != nil {
			names[c] = strings.TrimSpace(cellString(v))
		}
	}
	names = uniqueHeaders(names)

	var rows Rows
	for _, row := range grid[hdr+1:] {
		if blankRow(row) {
			continue
		}
		rec := Record{}
		var cols []string
		for c, v := range row {
			if v == nil {
				continue
			}
			rec[names[c]] = v
			cols = append(cols, names[c])
		}
		if rows.Columns == nil {
			rows.Columns = cols
		}
		rows.Records = append(rows.Records, rec)
	}
	return rows
}

func blankRow(row []any) bool {
	for _, v := range row {
		if v != nil {
			return false
		}
	}
	return true
}

func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
