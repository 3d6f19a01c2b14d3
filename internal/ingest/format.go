package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the decode path selected from a file name.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// Extensions lists every accepted file extension, lower case, with the dot.
var Extensions = []string{".json", ".geojson", ".csv", ".xlsx", ".xls"}

// DetectFormat classifies a file by the text after its last dot,
// case-insensitively.
func DetectFormat(name string) (Format, error) {
	base := filepath.Base(name)
	ext := ""
	if i := strings.LastIndex(base, "."); i >= 0 {
		ext = strings.ToLower(base[i+1:])
	}
	switch ext {
	case "json", "geojson":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "xls":
		return FormatXLS, nil
	}
	e := newError(UnsupportedFormat, fmt.Sprintf("Unsupported file type %q", ext), nil)
	e.File = name
	return "", e
}

// Supported reports whether name has an accepted extension.
func Supported(name string) bool {
	_, err := DetectFormat(name)
	return err == nil
}
