package gameapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/maze-runner/api/identity"
	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxListLimit = 100

// GameController manages game sessions and the leaderboard.
type GameController struct {
	games            i.GameService
	defaultListLimit int64
}

// NewGameController initializes a GameController. Listing endpoints return
// defaultListLimit entries when the request has no limit.
func NewGameController(gs i.GameService, defaultListLimit int) (*GameController, error) {
	return &GameController{
		games:            gs,
		defaultListLimit: int64(defaultListLimit),
	}, nil
}

// RegisterPublic registers public routes.
func (gc *GameController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", gc.leaderboard)
}

// RegisterProtected registers protected routes.
func (gc *GameController) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.POST("", gc.start)
		games.GET("/results", gc.results)
		games.GET("/:ID", gc.session)
		games.GET("/:ID/result", gc.result)
		games.GET("/:ID/hint", gc.hint)
		games.POST("/:ID/moves", gc.move)
		games.DELETE("/:ID", gc.abandon)
	}
}

func (gc *GameController) start(ctx *gin.Context) {
	playerID, username, ok := identity.PlayerFromContext(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request StartGameRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := gc.games.Start(ctx, playerID, username, request.Size, request.Seed)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newSessionResponse(snap, false))
}

func (gc *GameController) session(ctx *gin.Context) {
	playerID, sessionID, ok := gc.ids(ctx)
	if !ok {
		return
	}

	snap, err := gc.games.Session(ctx, sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(snap, true))
}

func (gc *GameController) move(ctx *gin.Context) {
	playerID, sessionID, ok := gc.ids(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := game.ParseDirection(request.Direction)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	snap, moved, err := gc.games.Move(ctx, sessionID, playerID, dir)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &MoveResponse{Moved: moved, Session: newSessionResponse(snap, false)})
}

func (gc *GameController) hint(ctx *gin.Context) {
	playerID, sessionID, ok := gc.ids(ctx)
	if !ok {
		return
	}

	alg, err := pathfinder.ParseAlgorithm(ctx.Query("algorithm"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	path, err := gc.games.Hint(ctx, sessionID, playerID, alg)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &HintResponse{
		Algorithm: alg.String(),
		Length:    path.Len(),
		Next:      nextDirection(path),
		Path:      path,
	})
}

func (gc *GameController) abandon(ctx *gin.Context) {
	playerID, sessionID, ok := gc.ids(ctx)
	if !ok {
		return
	}

	if err := gc.games.Abandon(ctx, sessionID, playerID); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (gc *GameController) result(ctx *gin.Context) {
	playerID, sessionID, ok := gc.ids(ctx)
	if !ok {
		return
	}

	res, err := gc.games.Result(ctx, sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newResultResponse(res))
}

func (gc *GameController) results(ctx *gin.Context) {
	playerID, _, ok := identity.PlayerFromContext(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	limit, ok := gc.limit(ctx)
	if !ok {
		return
	}

	results, err := gc.games.Results(ctx, playerID, limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		response = append(response, newResultResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

func (gc *GameController) leaderboard(ctx *gin.Context) {
	limit, ok := gc.limit(ctx)
	if !ok {
		return
	}

	standings, err := gc.games.Leaderboard(ctx, limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, standings)
}

// ids reads the caller and the session ID, writing the error response when
// either is missing.
func (gc *GameController) ids(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, _, ok := identity.PlayerFromContext(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, sessionID, true
}

func (gc *GameController) limit(ctx *gin.Context) (int64, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return gc.defaultListLimit, true
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 || n > maxListLimit {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return 0, false
	}
	return n, true
}
