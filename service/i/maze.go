package i

import (
	"context"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
)

// MazeService generates and solves mazes.
type MazeService interface {
	// Generate builds a width x height maze. A zero seed picks a random one;
	// the seed used is returned.
	Generate(ctx context.Context, width, height int, seed int64) (*maze.Grid, int64, error)

	Solve(ctx context.Context, g *maze.Grid, alg pathfinder.Algorithm, start, goal maze.Point) (pathfinder.Path, error)
}
