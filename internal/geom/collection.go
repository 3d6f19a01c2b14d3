// Package geom flattens GeoJSON collections into render buffers and derives
// the attribute view shared by the terminal UI and the exporters.
package geom

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNoGeometry is returned when a collection holds no drawable geometry.
var ErrNoGeometry = errors.New("no geometries found")

// FromCollection flattens every feature geometry into points, lines and
// polygons. Line and polygon vertices are also recorded as points so hover
// and inspect can snap to them.
func FromCollection(fc *geojson.FeatureCollection) (Data, error) {
	var d Data
	if fc == nil {
		return d, ErrNoGeometry
	}
	var bound orb.Bound
	seen := false

	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		fi := i
		addPt := func(p orb.Point) {
			d.Points = append(d.Points, [2]float64(p))
			d.PointFeature = append(d.PointFeature, fi)
		}
		addLine := func(ls orb.LineString) {
			line := make([][2]float64, len(ls))
			for j, p := range ls {
				line[j] = [2]float64(p)
				addPt(p)
			}
			d.Lines = append(d.Lines, line)
		}
		addPoly := func(poly orb.Polygon) {
			rings := make([][][2]float64, 0, len(poly))
			for _, r := range poly {
				ring := make([][2]float64, len(r))
				for j, p := range r {
					ring[j] = [2]float64(p)
					addPt(p)
				}
				rings = append(rings, ring)
			}
			d.Polygons = append(d.Polygons, rings)
		}

		var walk func(g orb.Geometry)
		walk = func(g orb.Geometry) {
			switch g := g.(type) {
			case orb.Point:
				addPt(g)
			case orb.MultiPoint:
				for _, p := range g {
					addPt(p)
				}
			case orb.LineString:
				addLine(g)
			case orb.MultiLineString:
				for _, ls := range g {
					addLine(ls)
				}
			case orb.Ring:
				addPoly(orb.Polygon{g})
			case orb.Polygon:
				addPoly(g)
			case orb.MultiPolygon:
				for _, p := range g {
					addPoly(p)
				}
			case orb.Bound:
				addPoly(g.ToPolygon())
			case orb.Collection:
				for _, c := range g {
					walk(c)
				}
			}
		}
		before := len(d.Points)
		walk(f.Geometry)
		if len(d.Points) == before {
			continue
		}
		if !seen {
			bound, seen = f.Geometry.Bound(), true
		} else {
			bound = bound.Union(f.Geometry.Bound())
		}
	}

	if len(d.Points) == 0 {
		return Data{}, ErrNoGeometry
	}
	d.BBox = bboxOf(bound)
	return d, nil
}
