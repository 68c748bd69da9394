package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/infrastruture/metrics"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

const (
	defaultRetention   = 10 * time.Minute
	persistenceTimeout = 2 * time.Second
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("session belongs to another player")
)

// GameConfig configures a GameService.
type GameConfig struct {
	Mazes       i.MazeService
	Results     i.ResultRepo
	Leaderboard i.Leaderboard
	Users       i.UserRepo
	Metrics     *metrics.Metrics
	Logger      i.Logger
	DefaultSize int
	Retention   time.Duration    // how long closed sessions stay readable
	Clock       func() time.Time // defaults to time.Now
}

// GameService keeps the sessions being played in memory. Closed sessions
// are dropped once they are older than the retention period.
type GameService struct {
	mazes       i.MazeService
	results     i.ResultRepo
	leaderboard i.Leaderboard
	users       i.UserRepo
	metrics     *metrics.Metrics
	logger      i.Logger
	defaultSize int
	retention   time.Duration
	clock       func() time.Time
	sessions    map[uuid.UUID]*game.Session
	statsMu     sync.Mutex // serializes read-modify-write of player stats
	sync.RWMutex
}

func NewGameService(c *GameConfig) (*GameService, error) {
	if c.Mazes == nil || c.Results == nil || c.Leaderboard == nil || c.Users == nil || c.Metrics == nil || c.Logger == nil {
		return nil, ErrNilDependency
	}

	gs := &GameService{
		mazes:       c.Mazes,
		results:     c.Results,
		leaderboard: c.Leaderboard,
		users:       c.Users,
		metrics:     c.Metrics,
		logger:      c.Logger,
		defaultSize: c.DefaultSize,
		retention:   c.Retention,
		clock:       c.Clock,
		sessions:    make(map[uuid.UUID]*game.Session),
	}
	if gs.retention <= 0 {
		gs.retention = defaultRetention
	}
	if gs.clock == nil {
		gs.clock = time.Now
	}
	return gs, nil
}

// Start generates a size x size maze and opens a session on it. A zero size
// uses the configured default.
func (g *GameService) Start(ctx context.Context, playerID uuid.UUID, username string, size int, seed int64) (game.Snapshot, error) {
	if size == 0 {
		size = g.defaultSize
	}

	grid, seed, err := g.mazes.Generate(ctx, size, size, seed)
	if err != nil {
		return game.Snapshot{}, err
	}

	now := g.clock()
	session, err := game.NewSession(game.Config{
		PlayerID:  playerID,
		Username:  username,
		Grid:      grid,
		Seed:      seed,
		StartedAt: now,
	})
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("opening session: %w", err)
	}

	g.Lock()
	g.sweep(now)
	g.sessions[session.ID()] = session
	g.Unlock()

	g.metrics.GameStarted()
	g.logger.Info(fmt.Sprintf("started %dx%d session %s for player %s (seed %d)", grid.Width(), grid.Height(), session.ID(), playerID, seed))
	return session.Snapshot(now), nil
}

// Move steps the player. It reports whether the player moved. The move that
// reaches the exit records the result.
func (g *GameService) Move(ctx context.Context, sessionID, playerID uuid.UUID, dir game.Direction) (game.Snapshot, bool, error) {
	session, err := g.lookup(sessionID, playerID)
	if err != nil {
		return game.Snapshot{}, false, err
	}

	now := g.clock()
	moved, finished, err := session.Apply(dir, now)
	if err != nil {
		return game.Snapshot{}, false, err
	}
	g.metrics.Move(moved)

	if finished {
		g.finish(ctx, session)
	}
	return session.Snapshot(now), moved, nil
}

func (g *GameService) Session(_ context.Context, sessionID, playerID uuid.UUID) (game.Snapshot, error) {
	session, err := g.lookup(sessionID, playerID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return session.Snapshot(g.clock()), nil
}

// Hint solves from the player's current cell to the exit.
func (g *GameService) Hint(ctx context.Context, sessionID, playerID uuid.UUID, alg pathfinder.Algorithm) (pathfinder.Path, error) {
	session, err := g.lookup(sessionID, playerID)
	if err != nil {
		return nil, err
	}

	snap := session.Snapshot(g.clock())
	if snap.State != game.Playing {
		return nil, game.ErrSessionClosed
	}
	return g.mazes.Solve(ctx, session.Grid(), alg, snap.Position, session.Grid().Exit())
}

func (g *GameService) Abandon(_ context.Context, sessionID, playerID uuid.UUID) error {
	session, err := g.lookup(sessionID, playerID)
	if err != nil {
		return err
	}
	if err := session.Abandon(g.clock()); err != nil {
		return err
	}

	g.metrics.GameAbandoned()
	g.logger.Info(fmt.Sprintf("player %s abandoned session %s", playerID, sessionID))
	return nil
}

func (g *GameService) Result(_ context.Context, sessionID, playerID uuid.UUID) (game.Result, error) {
	session, err := g.lookup(sessionID, playerID)
	if err != nil {
		return game.Result{}, err
	}
	return session.Result()
}

// Leaderboard returns the best n players and how many players are ranked.
func (g *GameService) Leaderboard(ctx context.Context, n int64) (game.Standings, error) {
	entries, err := g.leaderboard.Top(ctx, n)
	if err != nil {
		return game.Standings{}, err
	}

	players, err := g.leaderboard.Count(ctx)
	if err != nil {
		return game.Standings{}, err
	}
	return game.Standings{Players: players, Entries: entries}, nil
}

func (g *GameService) Results(ctx context.Context, playerID uuid.UUID, n int64) ([]game.Result, error) {
	return g.results.ByPlayer(ctx, playerID, n)
}

// finish stores the result, submits the score and updates the player's
// stats. Storage failures are logged; the run itself already counts.
func (g *GameService) finish(ctx context.Context, session *game.Session) {
	g.metrics.GameFinished()

	res, err := session.Result()
	if err != nil {
		g.logger.Error(fmt.Sprintf("scoring session %s: %s", session.ID(), err))
		return
	}
	g.logger.Info(fmt.Sprintf("session %s finished: %d moves, shortest %d, score %d", res.SessionID, res.Moves, res.Shortest, res.Score))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistenceTimeout)
	defer cancel()

	if err := g.results.Save(ctx, &res); err != nil {
		g.logger.Error(fmt.Sprintf("saving result of session %s: %s", res.SessionID, err))
	}

	if _, err := g.leaderboard.Submit(ctx, game.EntryFor(res)); err != nil {
		g.logger.Warning(fmt.Sprintf("submitting score of player %s: %s", res.PlayerID, err))
	}

	g.statsMu.Lock()
	defer g.statsMu.Unlock()

	user, err := g.users.ByID(res.PlayerID)
	if err != nil {
		g.logger.Warning(fmt.Sprintf("loading player %s: %s", res.PlayerID, err))
		return
	}
	user.RecordGame(res.Score)
	if err := g.users.Save(user); err != nil {
		g.logger.Error(fmt.Sprintf("updating stats of player %s: %s", res.PlayerID, err))
	}
}

func (g *GameService) lookup(sessionID, playerID uuid.UUID) (*game.Session, error) {
	g.RLock()
	session, ok := g.sessions[sessionID]
	g.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.PlayerID() != playerID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// sweep drops sessions closed before the retention window. Callers hold the
// write lock.
func (g *GameService) sweep(now time.Time) {
	for id, s := range g.sessions {
		if closedAt, closed := s.ClosedAt(); closed && now.Sub(closedAt) > g.retention {
			delete(g.sessions, id)
		}
	}
}
