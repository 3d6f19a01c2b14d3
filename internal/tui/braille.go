package tui

import "sort"

// dotBits maps a micro-pixel inside a 2x4 braille cell to its dot bit,
// indexed [column][row].
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// canvas is a raster of braille cells. Coordinates passed to its drawing
// methods are micro-pixels: 2 across and 4 down per terminal cell.
type canvas struct {
	w, h  int       // in cells
	cells [][]uint8 // per-cell dot mask
}

func newCanvas(w, h int) *canvas {
	cells := make([][]uint8, h)
	for i := range cells {
		cells[i] = make([]uint8, w)
	}
	return &canvas{w: w, h: h, cells: cells}
}

// set lights one micro-pixel. Out-of-range pixels are ignored.
func (c *canvas) set(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= c.w || cy >= c.h {
		return
	}
	c.cells[cy][cx] |= dotBits[mx%2][my%4]
}

// line draws a segment with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// polyline joins consecutive vertices; closed also joins the last to the first.
func (c *canvas) polyline(pts [][2]int, closed bool) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
	if closed && len(pts) > 2 {
		last := pts[len(pts)-1]
		c.line(last[0], last[1], pts[0][0], pts[0][1])
	}
}

// fill paints the interior of ring with the even-odd rule, one scanline
// per micro row.
func (c *canvas) fill(ring [][2]int) {
	if len(ring) < 3 {
		return
	}
	var xs []int
	for y := 0; y < c.h*4; y++ {
		xs = xs[:0]
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if a[1] == b[1] {
				continue
			}
			if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(b[1]-a[1])
				xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1]; x++ {
				c.set(x, y)
			}
		}
	}
}

// rows renders each cell row as a string, blank cells as spaces.
func (c *canvas) rows() [][]rune {
	out := make([][]rune, c.h)
	for y, row := range c.cells {
		r := make([]rune, c.w)
		for x, mask := range row {
			if mask == 0 {
				r[x] = ' '
			} else {
				r[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = r
	}
	return out
}
