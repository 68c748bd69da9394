package service

import (
	"context"
	"testing"

	"github.com/beka-birhanu/maze-runner/infrastruture/metrics"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMazeService(t *testing.T) *MazeService {
	t.Helper()
	svc, err := NewMazeService(&MazeConfig{
		MinSize: 5,
		MaxSize: 31,
		Metrics: metrics.New(),
		Logger:  newTestLogger(t),
	})
	require.NoError(t, err)
	return svc
}

func TestNewMazeService(t *testing.T) {
	_, err := NewMazeService(&MazeConfig{MinSize: 5, MaxSize: 9})
	assert.ErrorIs(t, err, ErrNilDependency)

	_, err = NewMazeService(&MazeConfig{MinSize: 3, MaxSize: 9, Metrics: metrics.New(), Logger: newTestLogger(t)})
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewMazeService(&MazeConfig{MinSize: 15, MaxSize: 9, Metrics: metrics.New(), Logger: newTestLogger(t)})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestMazeServiceGenerate(t *testing.T) {
	ctx := context.Background()
	svc := newTestMazeService(t)

	t.Run("out of range", func(t *testing.T) {
		_, _, err := svc.Generate(ctx, 4, 9, 1)
		assert.ErrorIs(t, err, ErrInvalidDimension)
		_, _, err = svc.Generate(ctx, 9, 33, 1)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("seeded mazes repeat", func(t *testing.T) {
		a, seedA, err := svc.Generate(ctx, 15, 11, 99)
		require.NoError(t, err)
		b, seedB, err := svc.Generate(ctx, 15, 11, 99)
		require.NoError(t, err)

		assert.Equal(t, int64(99), seedA)
		assert.Equal(t, seedA, seedB)
		assert.Equal(t, a.Rows(), b.Rows())
		assert.NoError(t, maze.Verify(a))
	})

	t.Run("zero seed is replaced", func(t *testing.T) {
		g, seed, err := svc.Generate(ctx, 9, 9, 0)
		require.NoError(t, err)
		assert.Positive(t, seed)

		again, _, err := svc.Generate(ctx, 9, 9, seed)
		require.NoError(t, err)
		assert.Equal(t, g.Rows(), again.Rows())
	})
}

func TestMazeServiceSolve(t *testing.T) {
	ctx := context.Background()
	svc := newTestMazeService(t)

	g, _, err := svc.Generate(ctx, 21, 21, 7)
	require.NoError(t, err)

	t.Run("both algorithms", func(t *testing.T) {
		for _, alg := range []pathfinder.Algorithm{pathfinder.BFS, pathfinder.Dijkstra} {
			path, err := svc.Solve(ctx, g, alg, g.Start(), g.Exit())
			require.NoError(t, err)
			assert.Equal(t, g.Start(), path[0])
			assert.Equal(t, g.Exit(), path[len(path)-1])
		}
	})

	t.Run("unreachable goal is an empty path", func(t *testing.T) {
		path, err := svc.Solve(ctx, g, pathfinder.BFS, g.Start(), maze.Point{X: 0, Y: 0})
		require.NoError(t, err)
		assert.True(t, path.Empty())
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := svc.Solve(ctx, nil, pathfinder.BFS, maze.Point{}, maze.Point{})
		assert.ErrorIs(t, err, ErrNilGrid)

		_, err = svc.Solve(ctx, g, pathfinder.Algorithm(5), g.Start(), g.Exit())
		assert.ErrorIs(t, err, pathfinder.ErrUnknownAlgorithm)
	})

	t.Run("grid larger than the size limit", func(t *testing.T) {
		big := maze.NewSeededGenerator(3).Generate(33, 9)
		_, err := svc.Solve(ctx, big, pathfinder.BFS, big.Start(), big.Exit())
		assert.ErrorIs(t, err, ErrInvalidDimension)

		edge := maze.NewSeededGenerator(3).Generate(31, 31)
		path, err := svc.Solve(ctx, edge, pathfinder.BFS, edge.Start(), edge.Exit())
		require.NoError(t, err)
		assert.False(t, path.Empty())
	})
}
