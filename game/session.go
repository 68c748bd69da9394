/*
Package game runs a single player through a generated maze.

A Session owns the grid, the player and an event log. It measures the run
against the shortest route found when the session starts and produces a
scored Result once the player stands on the exit.
*/
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/google/uuid"
)

// Session errors.
var (
	ErrNilGrid             = errors.New("session needs a grid")
	ErrNoRoute             = errors.New("exit is not reachable from start")
	ErrSessionClosed       = errors.New("session is no longer playing")
	ErrSessionNotFinished  = errors.New("session has not reached the exit")
	ErrInvalidSessionOwner = errors.New("session needs a player")
)

// State is the lifecycle stage of a session.
type State string

const (
	Playing   State = "playing"
	Finished  State = "finished"
	Abandoned State = "abandoned"
)

// EventType labels an entry of the session log.
type EventType string

const (
	EventStart   EventType = "START"
	EventMove    EventType = "MOVE"
	EventBlocked EventType = "BLOCKED"
	EventFinish  EventType = "FINISH"
	EventAbandon EventType = "ABANDON"
)

// Event is one entry of the session log.
type Event struct {
	Type EventType  `json:"type"`
	Pos  maze.Point `json:"pos"`
	At   time.Time  `json:"at"`
}

// Result is the scored outcome of a finished session.
type Result struct {
	ID             uuid.UUID `bson:"_id" json:"id"`
	SessionID      uuid.UUID `bson:"sessionId" json:"session_id"`
	PlayerID       uuid.UUID `bson:"playerId" json:"player_id"`
	Username       string    `bson:"username" json:"username"`
	Width          int       `bson:"width" json:"width"`
	Height         int       `bson:"height" json:"height"`
	Seed           int64     `bson:"seed" json:"seed"`
	Moves          int       `bson:"moves" json:"moves"`
	Shortest       int       `bson:"shortest" json:"shortest"`
	Efficiency     int       `bson:"efficiency" json:"efficiency"`
	ElapsedSeconds int64     `bson:"elapsedSeconds" json:"elapsed_seconds"`
	Score          int       `bson:"score" json:"score"`
	FinishedAt     time.Time `bson:"finishedAt" json:"finished_at"`
}

// Snapshot is a read-only copy of a session for callers.
type Snapshot struct {
	ID             uuid.UUID
	PlayerID       uuid.UUID
	State          State
	Seed           int64
	Position       maze.Point
	Moves          int
	Shortest       int
	ElapsedSeconds int64
	Grid           *maze.Grid // decorated with the player marker
	Events         []Event
}

// Config holds the parameters of a new session.
type Config struct {
	ID        uuid.UUID
	PlayerID  uuid.UUID
	Username  string
	Grid      *maze.Grid
	Seed      int64
	StartedAt time.Time
}

// Session is one run of a player through a maze.
type Session struct {
	id         uuid.UUID
	playerID   uuid.UUID
	username   string
	seed       int64
	grid       *maze.Grid
	player     *Player
	shortest   int
	startedAt  time.Time
	finishedAt time.Time
	resultID   uuid.UUID
	state      State
	events     []Event
	sync.RWMutex
}

// NewSession places a player on the grid's start and records the shortest
// route to the exit.
func NewSession(c Config) (*Session, error) {
	if c.Grid == nil {
		return nil, ErrNilGrid
	}
	if c.PlayerID == uuid.Nil {
		return nil, ErrInvalidSessionOwner
	}

	start, exit := c.Grid.Start(), c.Grid.Exit()
	route := pathfinder.FindPathBFS(start.X, start.Y, exit.X, exit.Y, c.Grid)
	if route.Empty() {
		return nil, ErrNoRoute
	}

	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	startedAt := c.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	return &Session{
		id:        id,
		playerID:  c.PlayerID,
		username:  c.Username,
		seed:      c.Seed,
		grid:      c.Grid,
		player:    NewPlayer(start),
		shortest:  route.Len(),
		startedAt: startedAt,
		state:     Playing,
		events:    []Event{{Type: EventStart, Pos: start, At: startedAt}},
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// PlayerID returns the owner of the session.
func (s *Session) PlayerID() uuid.UUID {
	return s.playerID
}

// Grid returns the maze the session is played on. It must not be modified.
func (s *Session) Grid() *maze.Grid {
	return s.grid
}

// Apply moves the player one step. It reports whether the player moved and
// whether this step reached the exit. Only the step that reaches the exit
// reports finished, so the caller can record the result exactly once.
func (s *Session) Apply(d Direction, now time.Time) (moved, finished bool, err error) {
	s.Lock()
	defer s.Unlock()

	if s.state != Playing {
		return false, false, ErrSessionClosed
	}

	if !s.player.Move(d, s.grid) {
		s.events = append(s.events, Event{Type: EventBlocked, Pos: s.player.Position(), At: now})
		return false, false, nil
	}
	s.events = append(s.events, Event{Type: EventMove, Pos: s.player.Position(), At: now})

	if s.player.HasReachedExit(s.grid) {
		s.state = Finished
		s.finishedAt = now
		s.resultID = uuid.New()
		s.events = append(s.events, Event{Type: EventFinish, Pos: s.player.Position(), At: now})
		return true, true, nil
	}
	return true, false, nil
}

// Abandon closes a session that is still being played.
func (s *Session) Abandon(now time.Time) error {
	s.Lock()
	defer s.Unlock()

	if s.state != Playing {
		return ErrSessionClosed
	}
	s.state = Abandoned
	s.finishedAt = now
	s.events = append(s.events, Event{Type: EventAbandon, Pos: s.player.Position(), At: now})
	return nil
}

// ClosedAt returns when the session was finished or abandoned. ok is false
// while it is still being played.
func (s *Session) ClosedAt() (at time.Time, ok bool) {
	s.RLock()
	defer s.RUnlock()
	return s.finishedAt, s.state != Playing
}

// Result scores a finished session. Every call returns the same result ID.
func (s *Session) Result() (Result, error) {
	s.RLock()
	defer s.RUnlock()

	if s.state != Finished {
		return Result{}, ErrSessionNotFinished
	}

	elapsed := int64(s.finishedAt.Sub(s.startedAt) / time.Second)
	moves := s.player.Moves()
	return Result{
		ID:             s.resultID,
		SessionID:      s.id,
		PlayerID:       s.playerID,
		Username:       s.username,
		Width:          s.grid.Width(),
		Height:         s.grid.Height(),
		Seed:           s.seed,
		Moves:          moves,
		Shortest:       s.shortest,
		Efficiency:     Efficiency(moves, s.shortest),
		ElapsedSeconds: elapsed,
		Score:          Score(moves, elapsed, s.shortest),
		FinishedAt:     s.finishedAt,
	}, nil
}

// Hint returns the shortest route from the player's position to the exit.
func (s *Session) Hint(alg pathfinder.Algorithm) pathfinder.Path {
	s.RLock()
	defer s.RUnlock()
	return pathfinder.Find(alg, s.player.Position(), s.grid.Exit(), s.grid)
}

// Snapshot copies the current state of the session.
func (s *Session) Snapshot(now time.Time) Snapshot {
	s.RLock()
	defer s.RUnlock()

	end := now
	if s.state != Playing {
		end = s.finishedAt
	}

	pos := s.player.Position()
	return Snapshot{
		ID:             s.id,
		PlayerID:       s.playerID,
		State:          s.state,
		Seed:           s.seed,
		Position:       pos,
		Moves:          s.player.Moves(),
		Shortest:       s.shortest,
		ElapsedSeconds: int64(end.Sub(s.startedAt) / time.Second),
		Grid:           s.grid.Overlay([]maze.Point{pos}, maze.Player),
		Events:         append([]Event(nil), s.events...),
	}
}
