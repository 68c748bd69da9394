package maze

// Marker is the content of a single grid cell.
type Marker byte

const (
	Wall  Marker = '#'
	Path  Marker = ' '
	Start Marker = 'S'
	Exit  Marker = 'E'

	// Overlay markers are painted by callers for display. The grid never
	// produces them itself but treats them as walkable.
	Player Marker = 'P'
	Trail  Marker = '*'
	Bot    Marker = 'B'
)

// IsOverlay reports whether m is one of the display-only markers.
func (m Marker) IsOverlay() bool {
	return m == Player || m == Trail || m == Bot
}

// Traversable reports whether a walker may stand on a cell holding m.
func (m Marker) Traversable() bool {
	return m == Path || m == Start || m == Exit || m.IsOverlay()
}

// Known reports whether m is a marker the grid understands.
func (m Marker) Known() bool {
	return m == Wall || m.Traversable()
}

func (m Marker) String() string {
	return string(rune(m))
}

// Point is a grid coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}
