package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Layer tags a canvas cell with what it is drawing so Render can color it.
// Higher layers win when strokes overlap, so charge glyphs stay visible on
// top of the field lines passing through them.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerGrid
	LayerVector
	LayerLine
	LayerFlow
	LayerNegative
	LayerPositive
	LayerSelect
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Layers        [][]Layer
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Layers: make([][]Layer, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Layers[i] = make([]Layer, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights a pixel at (x, y) in "sub-pixel" coordinates. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, l Layer) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
	if l > c.Layers[row][col] {
		c.Layers[row][col] = l
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Layers[i][j] = LayerNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, l Layer) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, l)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle strokes a circle outline with the midpoint algorithm. Braille
// sub-pixels are half as wide as they are tall, so x offsets are doubled to
// keep the circle round on screen.
func (c *Canvas) DrawCircle(cx, cy, r int, l Layer) {
	if r <= 0 {
		c.Set(cx, cy, l)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.Set(cx+2*x, cy+y, l)
		c.Set(cx-2*x, cy+y, l)
		c.Set(cx+2*x, cy-y, l)
		c.Set(cx-2*x, cy-y, l)
		c.Set(cx+2*y, cy+x, l)
		c.Set(cx-2*y, cy+x, l)
		c.Set(cx+2*y, cy-x, l)
		c.Set(cx-2*y, cy-x, l)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// DrawDot lights a small block around (x, y) so markers read at braille
// resolution.
func (c *Canvas) DrawDot(x, y, size int, l Layer) {
	for dy := -size; dy <= size; dy++ {
		for dx := -size; dx <= size; dx++ {
			c.Set(x+dx, y+dy, l)
		}
	}
}

// String renders the canvas without color, for tests and plain dumps.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each cell by its layer using the given theme. Consecutive
// cells on the same layer share one escape sequence.
func (c *Canvas) Render(t Theme) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for start < c.Width {
			l := c.Layers[row][start]
			end := start + 1
			for end < c.Width && c.Layers[row][end] == l {
				end++
			}
			run := string(c.Grid[row][start:end])
			if l == LayerNone {
				b.WriteString(run)
			} else {
				b.WriteString(t.styleFor(l).Render(run))
			}
			start = end
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
