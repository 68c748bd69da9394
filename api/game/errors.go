package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/gin-gonic/gin"
)

// statusFor maps service and domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotSessionOwner):
		return http.StatusForbidden
	case errors.Is(err, game.ErrSessionClosed), errors.Is(err, game.ErrSessionNotFinished):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidDimension),
		errors.Is(err, game.ErrUnknownDirection),
		errors.Is(err, pathfinder.ErrUnknownAlgorithm),
		errors.Is(err, maze.ErrEmptyGrid),
		errors.Is(err, maze.ErrRaggedGrid),
		errors.Is(err, maze.ErrUnknownMarker):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
}
