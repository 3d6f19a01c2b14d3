package geom

import "github.com/paulmach/orb"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func bboxOf(b orb.Bound) BBox {
	return BBox{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Empty reports a degenerate box with no width or no height.
func (b BBox) Empty() bool {
	return !(b.MaxX > b.MinX && b.MaxY > b.MinY)
}

// Padded widens each side of a degenerate box to at least span, centred on
// the original extent, so single points and straight lines stay drawable.
func (b BBox) Padded(span float64) BBox {
	if b.MaxX-b.MinX < span {
		c := (b.MinX + b.MaxX) / 2
		b.MinX, b.MaxX = c-span/2, c+span/2
	}
	if b.MaxY-b.MinY < span {
		c := (b.MinY + b.MaxY) / 2
		b.MinY, b.MaxY = c-span/2, c+span/2
	}
	return b
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox

	// PointFeature[i] is the index of the feature Points[i] was taken from.
	PointFeature []int
}
