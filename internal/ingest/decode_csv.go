package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

// ExtraColumn holds surplus cells of rows longer than the header.
const ExtraColumn = "__parsed_extra"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCSV reads delimited text with the first row as headers. Blank lines
// are skipped and ragged rows are tolerated.
func decodeCSV(data []byte) (Rows, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return Rows{}, nil
	}
	if err != nil {
		return Rows{}, newError(DecodeFailure, "parse csv header", err)
	}
	header = uniqueHeaders(header)

	var rows Rows
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Rows{}, newError(DecodeFailure, "parse csv", err)
		}
		if len(row) == 1 && row[0] == "" {
			continue
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		if len(row) > len(header) {
			extra := make([]any, 0, len(row)-len(header))
			for _, v := range row[len(header):] {
				extra = append(extra, v)
			}
			rec[ExtraColumn] = extra
		}
		if rows.Columns == nil {
			rows.Columns = firstColumns(header, len(row))
		}
		rows.Records = append(rows.Records, rec)
	}
	return rows, nil
}

func firstColumns(header []string, width int) []string {
	n := min(width, len(header))
	cols := append([]string(nil), header[:n]...)
	if width > len(header) {
		cols = append(cols, ExtraColumn)
	}
	return cols
}

// sniffDelimiter picks the most frequent of , ; tab | on the first line,
// ignoring quoted text. Comma wins ties and the empty case.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	counts := map[byte]int{}
	quoted := false
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == ',' || c == ';' || c == '\t' || c == '|':
			counts[c]++
		}
	}
	best, bestN := byte(','), counts[',']
	for _, c := range []byte{';', '\t', '|'} {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return rune(best)
}

// uniqueHeaders names blank headers __EMPTY and suffixes repeats with _1, _2...
func uniqueHeaders(in []string) []string {
	out := make([]string, len(in))
	used := make(map[string]bool, len(in))
	for i, h := range in {
		if h == "" {
			h = "__EMPTY"
		}
		name := h
		for n := 1; used[name]; n++ {
			name = h + "_" + strconv.Itoa(n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}
