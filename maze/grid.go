package maze

import (
	"errors"
	"fmt"
	"strings"
)

// MinDimension is the smallest width or height a generated grid may have.
// Anything below leaves Start and Exit on the same cell.
const MinDimension = 5

var (
	ErrEmptyGrid     = errors.New("grid has no rows")
	ErrRaggedGrid    = errors.New("grid rows differ in length")
	ErrUnknownMarker = errors.New("unknown grid marker")
)

// Grid is a fixed-size 2D array of markers.
type Grid struct {
	width  int
	height int
	cells  [][]Marker
}

// NormalizeDimension coerces n to an odd value of at least MinDimension.
func NormalizeDimension(n int) int {
	if n < MinDimension {
		return MinDimension
	}
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// newGrid allocates a width x height grid filled with walls.
func newGrid(width, height int) *Grid {
	cells := make([][]Marker, height)
	for y := range cells {
		cells[y] = make([]Marker, width)
		for x := range cells[y] {
			cells[y][x] = Wall
		}
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Parse builds a grid from text rows, one marker per byte.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	g := newGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d: %w", y, ErrRaggedGrid)
		}
		for x := 0; x < len(row); x++ {
			m := Marker(row[x])
			if !m.Known() {
				return nil, fmt.Errorf("%q at (%d,%d): %w", row[x], x, y, ErrUnknownMarker)
			}
			g.cells[y][x] = m
		}
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// At returns the marker at (x, y). The second value is false when the
// coordinate lies outside the grid.
func (g *Grid) At(x, y int) (Marker, bool) {
	if !g.IsValidCell(x, y) {
		return Wall, false
	}
	return g.cells[y][x], true
}

// IsValidCell reports whether (x, y) lies inside the grid.
func (g *Grid) IsValidCell(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsValidPath reports whether (x, y) is inside the grid and walkable.
// Overlay markers count as walkable so searches behave the same on a
// decorated grid.
func (g *Grid) IsValidPath(x, y int) bool {
	if !g.IsValidCell(x, y) {
		return false
	}
	return g.cells[y][x].Traversable()
}

// Start returns the conventional start cell.
func (g *Grid) Start() Point {
	return Point{X: 1, Y: 1}
}

// Exit returns the conventional exit cell.
func (g *Grid) Exit() Point {
	return Point{X: g.width - 2, Y: g.height - 2}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([][]Marker, g.height),
	}
	for y := range g.cells {
		c.cells[y] = append([]Marker(nil), g.cells[y]...)
	}
	return c
}

// Overlay returns a copy of the grid with m painted on every plain path
// cell in points. Start, Exit and walls are left untouched.
func (g *Grid) Overlay(points []Point, m Marker) *Grid {
	c := g.Clone()
	for _, p := range points {
		if cur, ok := c.At(p.X, p.Y); ok && cur == Path {
			c.cells[p.Y][p.X] = m
		}
	}
	return c
}

// set is used by the generator only.
func (g *Grid) set(x, y int, m Marker) {
	g.cells[y][x] = m
}

// Rows returns the grid as text rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var b strings.Builder
	for y, row := range g.cells {
		b.Reset()
		for _, m := range row {
			b.WriteByte(byte(m))
		}
		rows[y] = b.String()
	}
	return rows
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}
