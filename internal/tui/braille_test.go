package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvas_SetMapsDots(t *testing.T) {
	cv := newCanvas(2, 1)
	cv.set(0, 0)
	cv.set(1, 3)
	cv.set(2, 0)
	cv.set(99, 99)
	cv.set(-1, 0)

	rows := cv.rows()
	assert.Equal(t, rune(0x2800+0x01+0x80), rows[0][0])
	assert.Equal(t, rune(0x2801), rows[0][1])
}

func TestCanvas_Line(t *testing.T) {
	cv := newCanvas(2, 1)
	cv.line(0, 0, 3, 0)
	assert.Equal(t, "⠉⠉", string(cv.rows()[0]))
}

func TestCanvas_FillSquare(t *testing.T) {
	cv := newCanvas(1, 1)
	cv.fill([][2]int{{0, 0}, {1, 0}, {1, 4}, {0, 4}})
	assert.Equal(t, "⣿", string(cv.rows()[0]))
}

func TestCanvas_FillIgnoresDegenerateRing(t *testing.T) {
	cv := newCanvas(1, 1)
	cv.fill([][2]int{{0, 0}, {1, 1}})
	assert.Equal(t, " ", string(cv.rows()[0]))
}

func TestCanvas_ClosedPolyline(t *testing.T) {
	open, closed := newCanvas(1, 1), newCanvas(1, 1)
	tri := [][2]int{{0, 0}, {1, 0}, {0, 3}}
	open.polyline(tri, false)
	closed.polyline(tri, true)
	assert.NotEqual(t, open.rows()[0][0], closed.rows()[0][0])
}
