package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"points.csv", FormatCSV},
		{"POINTS.CSV", FormatCSV},
		{"a.json", FormatJSON},
		{"a.GeoJSON", FormatJSON},
		{"book.xlsx", FormatXLSX},
		{"book.xls", FormatXLS},
		{"archive.2024.csv", FormatCSV},
		{"/tmp/dir.json/file.csv", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Unsupported(t *testing.T) {
	for _, name := range []string{"notes.txt", "shape.kml", "README", "csv", "dir.csv/file"} {
		t.Run(name, func(t *testing.T) {
			_, err := DetectFormat(name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, UnsupportedFormat))
			assert.False(t, Supported(name))
		})
	}
}
