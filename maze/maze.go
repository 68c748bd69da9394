/*
Package maze provides the grid model and the maze generator.

A Grid is a dense array of markers (walls, paths, start, exit and display
overlays). The Generator carves a perfect maze into it with a randomized
depth-first walk over a lattice of carving nodes spaced two cells apart, so a
one-cell wall always separates parallel corridors. Width and height are kept
odd for that reason.
*/
package maze

import (
	"math/rand/v2"
	"time"
)

// carveSteps are the lattice offsets from a carving node to its neighbors,
// in the order up, down, left, right.
var carveSteps = []Point{
	{X: 0, Y: -2},
	{X: 0, Y: 2},
	{X: -2, Y: 0},
	{X: 2, Y: 0},
}

// Generator carves perfect mazes. It is not safe for concurrent use because
// it owns its random source.
type Generator struct {
	rng      *rand.Rand
	explored [][]bool
}

// NewGenerator returns a Generator drawing from r.
func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{rng: r}
}

// NewSeededGenerator returns a Generator whose output is fully determined by
// seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate builds a maze with a freshly seeded generator.
// A zero seed picks one from the clock.
func Generate(width, height int, seed uint64) *Grid {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewSeededGenerator(seed).Generate(width, height)
}

// Generate returns a new grid of the normalized dimensions holding a perfect
// maze, with Start at (1,1) and Exit at (width-2, height-2).
func (gen *Generator) Generate(width, height int) *Grid {
	width, height = NormalizeDimension(width), NormalizeDimension(height)
	g := newGrid(width, height)
	gen.resetExplored(width, height)

	origin := Point{X: 1, Y: 1}
	gen.explored[origin.Y][origin.X] = true
	g.set(origin.X, origin.Y, Path)
	stack := []Point{origin}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		candidates := gen.unexploredNeighbors(g, current)
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		chosen := candidates[gen.rng.IntN(len(candidates))]
		gen.explored[chosen.Y][chosen.X] = true
		carve(g, current, chosen)
		stack = append(stack, chosen)
	}

	mark(g, g.Start(), Start)
	mark(g, g.Exit(), Exit)
	return g
}

// resetExplored clears the explored mask, reusing it when the size matches.
func (gen *Generator) resetExplored(width, height int) {
	if len(gen.explored) != height || (height > 0 && len(gen.explored[0]) != width) {
		gen.explored = make([][]bool, height)
		for y := range gen.explored {
			gen.explored[y] = make([]bool, width)
		}
		return
	}

	for y := range gen.explored {
		clear(gen.explored[y])
	}
}

// unexploredNeighbors lists the carving nodes next to p that are inside the
// grid and not yet explored.
func (gen *Generator) unexploredNeighbors(g *Grid, p Point) []Point {
	var result []Point
	for _, step := range carveSteps {
		n := p.Add(step)
		if g.IsValidCell(n.X, n.Y) && !gen.explored[n.Y][n.X] {
			result = append(result, n)
		}
	}
	return result
}

// carve opens both nodes and the wall cell between them.
func carve(g *Grid, from, to Point) {
	g.set(from.X, from.Y, Path)
	g.set(to.X, to.Y, Path)
	g.set((from.X+to.X)/2, (from.Y+to.Y)/2, Path)
}

// mark places m on p only if p is a plain path cell.
func mark(g *Grid, p Point, m Marker) {
	if cur, ok := g.At(p.X, p.Y); ok && cur == Path {
		g.set(p.X, p.Y, m)
	}
}
