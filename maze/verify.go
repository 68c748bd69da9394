package maze

import (
	"errors"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

var (
	ErrMissingStart = errors.New("start marker not placed")
	ErrMissingExit  = errors.New("exit marker not placed")
	ErrDisconnected = errors.New("walkable cells are not all connected")
	ErrCycle        = errors.New("walkable cells contain a cycle")
)

var walkSteps = []Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// Verify checks that g is a perfect maze: Start and Exit are placed, every
// walkable cell is reachable from Start, and the walkable cells form a tree.
func Verify(g *Grid) error {
	if m, _ := g.At(g.Start().X, g.Start().Y); m != Start {
		return ErrMissingStart
	}
	if m, _ := g.At(g.Exit().X, g.Exit().Y); m != Exit {
		return ErrMissingExit
	}

	cells, edges := 0, 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.IsValidPath(x, y) {
				continue
			}
			cells++
			if g.IsValidPath(x+1, y) {
				edges++
			}
			if g.IsValidPath(x, y+1) {
				edges++
			}
		}
	}

	if reachable(g, g.Start()) != cells {
		return ErrDisconnected
	}
	if edges != cells-1 {
		return ErrCycle
	}
	return nil
}

// reachable counts the walkable cells connected to from.
func reachable(g *Grid, from Point) int {
	seen := mapset.New[Point]()
	q := queue.New[Point]()
	seen.Put(from)
	q.Enqueue(from)

	for !q.Empty() {
		p := q.Dequeue()
		for _, step := range walkSteps {
			n := p.Add(step)
			if g.IsValidPath(n.X, n.Y) && !seen.Has(n) {
				seen.Put(n)
				q.Enqueue(n)
			}
		}
	}
	return seen.Size()
}
