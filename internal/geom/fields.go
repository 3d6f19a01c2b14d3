package geom

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/paulmach/orb/geojson"
)

// Fields returns the sorted union of property keys over all features.
func Fields(fc *geojson.FeatureCollection) []string {
	if fc == nil {
		return nil
	}
	seen := map[string]bool{}
	var keys []string
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders a property value for display. Missing and null
// values are empty.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bs)
	}
}

// Table lays the collection out as rows over cols, one row per feature.
func Table(fc *geojson.FeatureCollection, cols []string) [][]string {
	if fc == nil {
		return nil
	}
	rows := make([][]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		vals := make([]string, len(cols))
		if f != nil {
			for i, k := range cols {
				vals[i] = FormatValue(f.Properties[k])
			}
		}
		rows = append(rows, vals)
	}
	return rows
}
