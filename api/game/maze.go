package gameapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
)

// MazeController generates and solves mazes without a session.
type MazeController struct {
	mazes       i.MazeService
	defaultSize int
}

// NewMazeController initializes a MazeController. Requests that omit a side
// length get defaultSize.
func NewMazeController(ms i.MazeService, defaultSize int) (*MazeController, error) {
	return &MazeController{
		mazes:       ms,
		defaultSize: defaultSize,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.POST("/solve", mc.solve)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	// an empty body asks for the defaults
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	width, height := mc.sides(request.Width, request.Height)
	g, seed, err := mc.mazes.Generate(ctx, width, height, request.Seed)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &MazeResponse{
		Width:  g.Width(),
		Height: g.Height(),
		Seed:   seed,
		Start:  g.Start(),
		Exit:   g.Exit(),
		Rows:   g.Rows(),
	})
}

func (mc *MazeController) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alg, err := pathfinder.ParseAlgorithm(request.Algorithm)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var g *maze.Grid
	if len(request.Rows) > 0 {
		g, err = maze.Parse(request.Rows)
	} else {
		width, height := mc.sides(request.Width, request.Height)
		g, _, err = mc.mazes.Generate(ctx, width, height, request.Seed)
	}
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	start, goal := g.Start(), g.Exit()
	if request.Start != nil {
		start = *request.Start
	}
	if request.Goal != nil {
		goal = *request.Goal
	}

	path, err := mc.mazes.Solve(ctx, g, alg, start, goal)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &SolveResponse{
		Algorithm: alg.String(),
		Found:     !path.Empty(),
		Length:    path.Len(),
		Path:      path,
		Rows:      g.Overlay(path, maze.Trail).Rows(),
	})
}

func (mc *MazeController) sides(width, height int) (int, int) {
	if width == 0 {
		width = mc.defaultSize
	}
	if height == 0 {
		height = width
	}
	return width, height
}
