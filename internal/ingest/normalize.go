package ingest

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Normalize converts records into Point features using the given coordinate
// columns. Rows whose coordinates do not parse or fall out of range are
// dropped silently; dropped reports how many. An empty result is a
// NoValidRows error.
func Normalize(rows Rows, cols Columns) (fc *geojson.FeatureCollection, dropped int, err error) {
	fc = geojson.NewFeatureCollection()
	for _, rec := range rows.Records {
		lat, ok1 := parseLeadingFloat(rec[cols.Lat])
		lon, ok2 := parseLeadingFloat(rec[cols.Lon])
		if !ok1 || !ok2 || !inRange(lat, minLatitude, maxLatitude) || !inRange(lon, minLongitude, maxLongitude) {
			dropped++
			continue
		}
		f := geojson.NewFeature(orb.Point{lon, lat})
		f.Properties = copyRecord(rec)
		fc.Append(f)
	}
	if len(fc.Features) == 0 {
		e := newError(NoValidRows, "No valid rows found with coordinates within acceptable ranges", nil)
		e.Column = cols.Lat + "," + cols.Lon
		return nil, dropped, e
	}
	return fc, dropped, nil
}

// inRange is false for NaN and infinities.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func copyRecord(rec Record) geojson.Properties {
	props := make(geojson.Properties, len(rec))
	for k, v := range rec {
		props[k] = v
	}
	return props
}
