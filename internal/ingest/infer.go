package ingest

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultSampleSize is how many leading records column validation inspects.
const DefaultSampleSize = 50

// Record is one decoded input row: column name to string, float64, bool or
// nil. Records decoded from JSON arrays may also hold nested values, which
// are carried through untouched.
type Record map[string]any

// Rows is a decoded tabular input. Columns holds the keys of the first
// record in source order; Go maps do not keep it.
type Rows struct {
	Columns []string
	Records []Record
}

// Axis selects the latitude or longitude side of inference.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

func (a Axis) String() string {
	if a == Latitude {
		return "latitude"
	}
	return "longitude"
}

// Columns names the record keys holding coordinates.
type Columns struct {
	Lat string
	Lon string
}

var (
	latName = regexp.MustCompile(`(?i)lat|^y$|_y$|^y_`)
	lonName = regexp.MustCompile(`(?i)lon|lng|^x$|_x$|^x_`)
)

// MatchesAxis reports whether a column name looks like a coordinate column
// for the given axis.
func MatchesAxis(name string, axis Axis) bool {
	if axis == Latitude {
		return latName.MatchString(name)
	}
	return lonName.MatchString(name)
}

// Score ranks a candidate column name: 3 for the canonical names, 2 for the
// bare cartesian letter, 1 for any other pattern match.
func Score(name string, axis Axis) int {
	k := strings.ToLower(name)
	switch axis {
	case Latitude:
		switch k {
		case "lat", "latitude":
			return 3
		case "y":
			return 2
		}
	case Longitude:
		switch k {
		case "lon", "lng", "longitude":
			return 3
		case "x":
			return 2
		}
	}
	return 1
}

func validatorFor(axis Axis) func(any) bool {
	if axis == Latitude {
		return IsValidLatitude
	}
	return IsValidLongitude
}

// Candidates returns the columns that match the axis naming pattern and hold
// only valid, non-empty-at-least-once values across the sample, ordered by
// descending Score with ties in column order.
func Candidates(rows Rows, axis Axis, sampleSize int) []string {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	sample := rows.Records
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	valid := validatorFor(axis)

	var out []string
	for _, col := range rows.Columns {
		if !MatchesAxis(col, axis) {
			continue
		}
		if sampleHolds(sample, col, valid) {
			out = append(out, col)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Score(out[i], axis) > Score(out[j], axis)
	})
	return out
}

// sampleHolds is true when every non-empty sampled value passes valid and
// at least one non-empty value exists.
func sampleHolds(sample []Record, col string, valid func(any) bool) bool {
	seen := false
	for _, rec := range sample {
		v := rec[col]
		if isEmpty(v) {
			continue
		}
		if !valid(v) {
			return false
		}
		seen = true
	}
	return seen
}

// InferColumns picks the best latitude and longitude columns. Both axes must
// resolve; otherwise a NoCoordinateColumns error is returned.
func InferColumns(rows Rows, sampleSize int) (Columns, error) {
	lats := Candidates(rows, Latitude, sampleSize)
	lons := Candidates(rows, Longitude, sampleSize)

	var missing []string
	if len(lats) == 0 {
		missing = append(missing, Latitude.String())
	}
	if len(lons) == 0 {
		missing = append(missing, Longitude.String())
	}
	if len(missing) > 0 {
		e := newError(NoCoordinateColumns,
			`No valid latitude/longitude columns found. Columns must be named like "lat", "lon", "x", "y" `+
				`and contain valid numeric coordinates (Lat: +/-90, Lon: +/-180)`, nil)
		e.Column = strings.Join(missing, ",")
		return Columns{}, e
	}
	return Columns{Lat: lats[0], Lon: lons[0]}, nil
}
