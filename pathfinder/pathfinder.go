// Package pathfinder finds shortest routes between two cells of a grid.
//
// Both searches share one expansion loop and differ only in how the frontier
// orders nodes: breadth-first search uses a FIFO queue, Dijkstra a min-heap
// keyed by accumulated cost. Every step costs 1, so both return paths of the
// same length, but the exact route chosen among equally short ones depends on
// the frontier and is stable for a given grid.
package pathfinder

import (
	"errors"
	"math"
	"strings"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/zyedidia/generic/mapset"
)

const stepCost = 1

var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// neighborSteps is the fixed expansion order: up, down, left, right.
var neighborSteps = []maze.Point{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Grid is the read-only view a search needs.
type Grid interface {
	Width() int
	Height() int
	IsValidPath(x, y int) bool
}

// Algorithm selects a search strategy.
type Algorithm int

const (
	BFS Algorithm = iota
	Dijkstra
)

func (a Algorithm) String() string {
	switch a {
	case BFS:
		return "bfs"
	case Dijkstra:
		return "dijkstra"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a case-insensitive name to an Algorithm.
// An empty name selects BFS.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bfs":
		return BFS, nil
	case "dijkstra":
		return Dijkstra, nil
	default:
		return BFS, ErrUnknownAlgorithm
	}
}

// FindPathBFS returns a shortest path from (startX, startY) to (endX, endY)
// using breadth-first search, or an empty path when there is none.
func FindPathBFS(startX, startY, endX, endY int, g Grid) Path {
	start, goal := maze.Point{X: startX, Y: startY}, maze.Point{X: endX, Y: endY}
	return search(newFIFOFrontier(), make(map[maze.Point]int), start, goal, g)
}

// FindPathDijkstra returns a shortest path using Dijkstra's algorithm with
// unit step costs, or an empty path when there is none.
func FindPathDijkstra(startX, startY, endX, endY int, g Grid) Path {
	start, goal := maze.Point{X: startX, Y: startY}, maze.Point{X: endX, Y: endY}

	costs := make(map[maze.Point]int)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.IsValidPath(x, y) {
				costs[maze.Point{X: x, Y: y}] = math.MaxInt
			}
		}
	}

	return search(newCostFrontier(), costs, start, goal, g)
}

// Find dispatches to the search selected by alg.
func Find(alg Algorithm, start, goal maze.Point, g Grid) Path {
	if alg == Dijkstra {
		return FindPathDijkstra(start.X, start.Y, goal.X, goal.Y, g)
	}
	return FindPathBFS(start.X, start.Y, goal.X, goal.Y, g)
}

// search is the shared expansion loop. costs holds the best known cost per
// cell; a missing entry means the cell was never reached.
func search(f frontier, costs map[maze.Point]int, start, goal maze.Point, g Grid) Path {
	if !g.IsValidPath(start.X, start.Y) || !g.IsValidPath(goal.X, goal.Y) {
		return nil
	}

	cameFrom := make(map[maze.Point]maze.Point)
	finalized := mapset.New[maze.Point]()

	costs[start] = 0
	f.push(node{pos: start})

	for !f.empty() {
		current := f.pop()

		// Stale entries left behind by a later relaxation.
		if finalized.Has(current.pos) {
			continue
		}
		finalized.Put(current.pos)

		if current.pos == goal {
			return reconstruct(cameFrom, goal)
		}

		for _, step := range neighborSteps {
			next := current.pos.Add(step)
			if !g.IsValidPath(next.X, next.Y) || finalized.Has(next) {
				continue
			}

			cost := current.cost + stepCost
			if known, seen := costs[next]; seen && cost >= known {
				continue
			}

			costs[next] = cost
			cameFrom[next] = current.pos
			f.push(node{pos: next, cost: cost})
		}
	}

	return nil
}

// reconstruct walks the predecessor map back from goal and reverses it.
func reconstruct(cameFrom map[maze.Point]maze.Point, goal maze.Point) Path {
	path := Path{goal}
	for current, ok := cameFrom[goal]; ok; current, ok = cameFrom[current] {
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
