package pathfinder

import "github.com/beka-birhanu/maze-runner/maze"

// Path is an ordered route from start to goal, both included.
// An empty Path means the goal is unreachable.
type Path []maze.Point

// Len returns the number of steps along the path.
func (p Path) Len() int {
	return PathLength(p)
}

// Empty reports whether the path carries no route.
func (p Path) Empty() bool {
	return len(p) == 0
}

// PathLength returns max(0, len(path)-1).
func PathLength(path []maze.Point) int {
	if len(path) == 0 {
		return 0
	}
	return len(path) - 1
}
