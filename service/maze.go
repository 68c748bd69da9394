package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/beka-birhanu/maze-runner/infrastruture/metrics"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service/i"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/beka-birhanu/maze-runner/service"

var (
	ErrInvalidDimension = errors.New("maze dimension out of range")
	ErrNilGrid          = errors.New("no maze to solve")
)

// MazeConfig configures a MazeService.
type MazeConfig struct {
	MinSize int
	MaxSize int
	Metrics *metrics.Metrics
	Logger  i.Logger
	Tracer  trace.Tracer // defaults to the global provider
}

// MazeService generates mazes within a size range and solves them.
type MazeService struct {
	minSize int
	maxSize int
	metrics *metrics.Metrics
	logger  i.Logger
	tracer  trace.Tracer
}

func NewMazeService(c *MazeConfig) (*MazeService, error) {
	if c.Metrics == nil || c.Logger == nil {
		return nil, ErrNilDependency
	}
	if c.MinSize < maze.MinDimension || c.MaxSize < c.MinSize {
		return nil, fmt.Errorf("%w: size range [%d, %d]", ErrInvalidDimension, c.MinSize, c.MaxSize)
	}

	tracer := c.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &MazeService{
		minSize: c.MinSize,
		maxSize: c.MaxSize,
		metrics: c.Metrics,
		logger:  c.Logger,
		tracer:  tracer,
	}, nil
}

// Generate builds a perfect maze. Even sides are rounded up to the next odd
// number by the generator. A zero seed draws a random positive one.
func (m *MazeService) Generate(ctx context.Context, width, height int, seed int64) (*maze.Grid, int64, error) {
	_, span := m.tracer.Start(ctx, "MazeService.Generate", trace.WithAttributes(
		attribute.Int("width", width),
		attribute.Int("height", height),
	))
	defer span.End()

	if err := m.validate(width, height); err != nil {
		span.SetStatus(codes.Error, "invalid dimension")
		return nil, 0, err
	}

	if seed == 0 {
		seed = rand.Int64N(math.MaxInt64) + 1
	}
	span.SetAttributes(attribute.Int64("seed", seed))

	g := maze.Generate(width, height, uint64(seed))
	if err := maze.Verify(g); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "imperfect maze")
		m.logger.Error(fmt.Sprintf("generated maze failed verification (seed %d): %s", seed, err))
		return nil, 0, err
	}

	m.metrics.MazeGenerated(fmt.Sprintf("%dx%d", g.Width(), g.Height()))
	span.SetStatus(codes.Ok, "generated")
	return g, seed, nil
}

// Solve runs the selected search. An unreachable goal is not an error; the
// returned path is empty. Grids larger than the generator's size limit are
// rejected.
func (m *MazeService) Solve(ctx context.Context, g *maze.Grid, alg pathfinder.Algorithm, start, goal maze.Point) (pathfinder.Path, error) {
	_, span := m.tracer.Start(ctx, "MazeService.Solve", trace.WithAttributes(
		attribute.String("algorithm", alg.String()),
		attribute.Int("start.x", start.X),
		attribute.Int("start.y", start.Y),
		attribute.Int("goal.x", goal.X),
		attribute.Int("goal.y", goal.Y),
	))
	defer span.End()

	if g == nil {
		span.SetStatus(codes.Error, "no grid")
		return nil, ErrNilGrid
	}
	if alg != pathfinder.BFS && alg != pathfinder.Dijkstra {
		span.SetStatus(codes.Error, "unknown algorithm")
		return nil, pathfinder.ErrUnknownAlgorithm
	}
	if limit := maze.NormalizeDimension(m.maxSize); g.Width() > limit || g.Height() > limit {
		span.SetStatus(codes.Error, "grid too large")
		return nil, fmt.Errorf("%w: %dx%d, sides must not exceed %d", ErrInvalidDimension, g.Width(), g.Height(), limit)
	}

	began := time.Now()
	path := pathfinder.Find(alg, start, goal, g)
	m.metrics.SearchCompleted(alg.String(), !path.Empty(), path.Len(), time.Since(began))

	span.SetAttributes(attribute.Bool("found", !path.Empty()), attribute.Int("steps", path.Len()))
	span.SetStatus(codes.Ok, "solved")
	return path, nil
}

func (m *MazeService) validate(width, height int) error {
	for _, side := range []int{width, height} {
		if side < m.minSize || side > m.maxSize {
			return fmt.Errorf("%w: %dx%d, sides must be within [%d, %d]", ErrInvalidDimension, width, height, m.minSize, m.maxSize)
		}
	}
	return nil
}
