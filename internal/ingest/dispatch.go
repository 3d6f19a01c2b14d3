package ingest

import (
	"encoding/json"

	"github.com/paulmach/orb/geojson"
)

// decoded is the output of a format decoder: either native GeoJSON that
// skips inference, or records awaiting it. raw holds the native document
// as read, wrapped into a collection when the input was a single Feature.
type decoded struct {
	native *geojson.FeatureCollection
	raw    json.RawMessage
	rows   Rows
}

// decode routes the file contents to the decoder for format.
func decode(format Format, data []byte) (decoded, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatCSV:
		rows, err := decodeCSV(data)
		return decoded{rows: rows}, err
	case FormatXLSX, FormatXLS:
		rows, err := decodeSheet(data, format)
		return decoded{rows: rows}, err
	}
	return decoded{}, newError(UnsupportedFormat, "unsupported file type "+string(format), nil)
}
