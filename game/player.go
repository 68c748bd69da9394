package game

import (
	"errors"
	"strings"

	"github.com/beka-birhanu/maze-runner/maze"
)

var ErrUnknownDirection = errors.New("unknown direction")

// Direction is a single orthogonal step.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionDeltas = map[Direction]maze.Point{
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// ParseDirection accepts w/a/s/d in either case or the direction names.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "up", "north":
		return Up, nil
	case "s", "down", "south":
		return Down, nil
	case "a", "left", "west":
		return Left, nil
	case "d", "right", "east":
		return Right, nil
	default:
		return Up, ErrUnknownDirection
	}
}

// Delta returns the coordinate offset of one step in d.
func (d Direction) Delta() maze.Point {
	return directionDeltas[d]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Walkable is the grid view a player moves on.
type Walkable interface {
	IsValidPath(x, y int) bool
	At(x, y int) (maze.Marker, bool)
	Exit() maze.Point
}

// Player tracks a walker's position, move count and visited cells.
type Player struct {
	start   maze.Point
	pos     maze.Point
	moves   int
	history []maze.Point
}

// NewPlayer places a player on start.
func NewPlayer(start maze.Point) *Player {
	return &Player{
		start:   start,
		pos:     start,
		history: []maze.Point{start},
	}
}

// Move steps the player one cell in d. It returns false and leaves the
// player in place when the target is a wall or outside the grid.
func (p *Player) Move(d Direction, g Walkable) bool {
	next := p.pos.Add(d.Delta())
	if !g.IsValidPath(next.X, next.Y) {
		return false
	}

	p.pos = next
	p.moves++
	p.history = append(p.history, next)
	return true
}

// Position returns the current cell.
func (p *Player) Position() maze.Point {
	return p.pos
}

// Moves returns the number of successful steps.
func (p *Player) Moves() int {
	return p.moves
}

// History returns every cell the player stood on, starting cell first.
func (p *Player) History() []maze.Point {
	return append([]maze.Point(nil), p.history...)
}

// HasReachedExit reports whether the player stands on the exit.
func (p *Player) HasReachedExit(g Walkable) bool {
	m, ok := g.At(p.pos.X, p.pos.Y)
	if !ok {
		return false
	}
	return m == maze.Exit || p.pos == g.Exit()
}

// Reset puts the player back on its starting cell and clears its record.
func (p *Player) Reset() {
	p.pos = p.start
	p.moves = 0
	p.history = []maze.Point{p.start}
}
