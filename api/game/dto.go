// Package gameapi exposes maze generation, solving and game sessions over HTTP.
package gameapi

import (
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/google/uuid"
)

// GenerateRequest asks for a new maze. Zero values pick the defaults.
type GenerateRequest struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"`
}

// MazeResponse describes a generated maze.
type MazeResponse struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Seed   int64      `json:"seed"`
	Start  maze.Point `json:"start"`
	Exit   maze.Point `json:"exit"`
	Rows   []string   `json:"rows"`
}

// SolveRequest names a maze either by its rows or by a seed and size.
// Start and Goal default to the maze's start and exit.
type SolveRequest struct {
	Rows      []string    `json:"rows"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Seed      int64       `json:"seed"`
	Algorithm string      `json:"algorithm"`
	Start     *maze.Point `json:"start"`
	Goal      *maze.Point `json:"goal"`
}

// SolveResponse holds the route and the maze with the route drawn on it.
type SolveResponse struct {
	Algorithm string       `json:"algorithm"`
	Found     bool         `json:"found"`
	Length    int          `json:"length"`
	Path      []maze.Point `json:"path"`
	Rows      []string     `json:"rows"`
}

// StartGameRequest opens a session on a square maze.
type StartGameRequest struct {
	Size int   `json:"size"`
	Seed int64 `json:"seed"`
}

// MoveRequest carries one step, as w/a/s/d or a direction name.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// SessionResponse is the public view of a game session.
type SessionResponse struct {
	ID             uuid.UUID    `json:"id"`
	State          game.State   `json:"state"`
	Seed           int64        `json:"seed"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Position       maze.Point   `json:"position"`
	Moves          int          `json:"moves"`
	Shortest       int          `json:"shortest"`
	ElapsedSeconds int64        `json:"elapsed_seconds"`
	Rows           []string     `json:"rows"`
	Events         []game.Event `json:"events,omitempty"`
}

// MoveResponse reports whether the step was taken.
type MoveResponse struct {
	Moved   bool            `json:"moved"`
	Session SessionResponse `json:"session"`
}

// HintResponse holds the shortest route from the player to the exit.
type HintResponse struct {
	Algorithm string       `json:"algorithm"`
	Length    int          `json:"length"`
	Next      string       `json:"next,omitempty"`
	Path      []maze.Point `json:"path"`
}

// ResultResponse is a scored run.
type ResultResponse struct {
	SessionID      uuid.UUID `json:"session_id"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Seed           int64     `json:"seed"`
	Moves          int       `json:"moves"`
	Shortest       int       `json:"shortest"`
	Efficiency     int       `json:"efficiency"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	Score          int       `json:"score"`
	FinishedAt     time.Time `json:"finished_at"`
}

func newSessionResponse(s game.Snapshot, withEvents bool) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID,
		State:          s.State,
		Seed:           s.Seed,
		Width:          s.Grid.Width(),
		Height:         s.Grid.Height(),
		Position:       s.Position,
		Moves:          s.Moves,
		Shortest:       s.Shortest,
		ElapsedSeconds: s.ElapsedSeconds,
		Rows:           s.Grid.Rows(),
	}
	if withEvents {
		resp.Events = s.Events
	}
	return resp
}

func newResultResponse(r game.Result) ResultResponse {
	return ResultResponse{
		SessionID:      r.SessionID,
		Width:          r.Width,
		Height:         r.Height,
		Seed:           r.Seed,
		Moves:          r.Moves,
		Shortest:       r.Shortest,
		Efficiency:     r.Efficiency,
		ElapsedSeconds: r.ElapsedSeconds,
		Score:          r.Score,
		FinishedAt:     r.FinishedAt,
	}
}

// nextDirection names the first step of path, if any.
func nextDirection(path pathfinder.Path) string {
	if len(path) < 2 {
		return ""
	}
	step := maze.Point{X: path[1].X - path[0].X, Y: path[1].Y - path[0].Y}
	for _, d := range []game.Direction{game.Up, game.Down, game.Left, game.Right} {
		if d.Delta() == step {
			return d.String()
		}
	}
	return ""
}
