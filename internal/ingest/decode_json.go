package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/paulmach/orb/geojson"
)

func decodeJSON(data []byte) (decoded, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))

	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return decoded{}, newError(DecodeFailure, "parse json", err)
	}

	switch data[0] {
	case '{':
		typ, err := jsonparser.GetString(data, "type")
		if err != nil {
			return decoded{}, invalidShape()
		}
		switch typ {
		case "FeatureCollection":
			fc, err := geojson.UnmarshalFeatureCollection(data)
			if err != nil {
				return decoded{}, newError(DecodeFailure, "parse geojson feature collection", err)
			}
			return decoded{native: fc, raw: bytes.Clone(data)}, nil
		case "Feature":
			f, err := geojson.UnmarshalFeature(data)
			if err != nil {
				return decoded{}, newError(DecodeFailure, "parse geojson feature", err)
			}
			fc := geojson.NewFeatureCollection()
			fc.Append(f)
			return decoded{native: fc, raw: wrapFeature(data)}, nil
		}
		return decoded{}, invalidShape()
	case '[':
		rows, err := decodeRecords(data)
		if err != nil {
			return decoded{}, newError(DecodeFailure, "parse json array", err)
		}
		return decoded{rows: rows}, nil
	}
	return decoded{}, invalidShape()
}

// wrapFeature encloses a raw Feature in a FeatureCollection document.
func wrapFeature(feature []byte) json.RawMessage {
	const head = `{"type":"FeatureCollection","features":[`
	raw := make([]byte, 0, len(head)+len(feature)+2)
	raw = append(raw, head...)
	raw = append(raw, feature...)
	return append(raw, ']', '}')
}

func invalidShape() *Error {
	return newError(InvalidShape,
		"Invalid JSON format. Must be standard GeoJSON or an array of objects with coordinates", nil)
}

// decodeRecords turns each array element into a Record. Key order of the
// first element is preserved in Rows.Columns. Non-object elements become
// empty records.
func decodeRecords(data []byte) (Rows, error) {
	var rows Rows
	var cbErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if cbErr != nil {
			return
		}
		if err != nil {
			cbErr = err
			return
		}
		rec := Record{}
		first := len(rows.Records) == 0
		if first {
			rows.Columns = []string{}
		}
		if dataType == jsonparser.Object {
			cbErr = jsonparser.ObjectEach(value, func(key, v []byte, vt jsonparser.ValueType, _ int) error {
				name := string(key)
				val, err := scalarValue(v, vt)
				if err != nil {
					return fmt.Errorf("field %q: %w", name, err)
				}
				if _, dup := rec[name]; !dup && first {
					rows.Columns = append(rows.Columns, name)
				}
				rec[name] = val
				return nil
			})
		}
		rows.Records = append(rows.Records, rec)
	})
	if err != nil {
		return Rows{}, err
	}
	if cbErr != nil {
		return Rows{}, cbErr
	}
	return rows, nil
}

// scalarValue converts one JSON value to a record value: string, float64,
// bool, nil, or a decoded nested structure.
func scalarValue(v []byte, vt jsonparser.ValueType) (any, error) {
	switch vt {
	case jsonparser.String:
		return jsonparser.ParseString(v)
	case jsonparser.Number:
		return jsonparser.ParseFloat(v)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(v)
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Object, jsonparser.Array:
		var nested any
		if err := json.Unmarshal(v, &nested); err != nil {
			return nil, err
		}
		return nested, nil
	}
	return nil, fmt.Errorf("unexpected json value type %s", vt)
}
