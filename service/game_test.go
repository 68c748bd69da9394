package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/identity"
	"github.com/beka-birhanu/maze-runner/infrastruture/metrics"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameFixture struct {
	svc     *GameService
	users   *fakeUserRepo
	results *fakeResultRepo
	board   *fakeLeaderboard
	clock   *fakeClock
	player  *identity.User
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()
	f := &gameFixture{
		users:   newFakeUserRepo(),
		results: &fakeResultRepo{},
		board:   newFakeLeaderboard(),
		clock:   &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		player:  &identity.User{ID: uuid.New(), Username: "theseus"},
	}
	require.NoError(t, f.users.Save(f.player))

	svc, err := NewGameService(&GameConfig{
		Mazes:       newTestMazeService(t),
		Results:     f.results,
		Leaderboard: f.board,
		Users:       f.users,
		Metrics:     metrics.New(),
		Logger:      newTestLogger(t),
		DefaultSize: 11,
		Retention:   time.Minute,
		Clock:       f.clock.Now,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

// directions turns a path into the moves that walk it.
func directions(t *testing.T, path pathfinder.Path) []game.Direction {
	t.Helper()
	dirs := make([]game.Direction, 0, len(path))
	for idx := 1; idx < len(path); idx++ {
		step := maze.Point{X: path[idx].X - path[idx-1].X, Y: path[idx].Y - path[idx-1].Y}
		found := false
		for _, d := range []game.Direction{game.Up, game.Down, game.Left, game.Right} {
			if d.Delta() == step {
				dirs = append(dirs, d)
				found = true
			}
		}
		require.True(t, found, "step %v is not a unit move", step)
	}
	return dirs
}

func TestNewGameService(t *testing.T) {
	_, err := NewGameService(&GameConfig{})
	assert.ErrorIs(t, err, ErrNilDependency)
}

func TestGameServiceStart(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t)

	t.Run("default size", func(t *testing.T) {
		snap, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, game.Playing, snap.State)
		assert.Equal(t, 11, snap.Grid.Width())
		assert.Equal(t, int64(3), snap.Seed)
		assert.Equal(t, maze.Point{X: 1, Y: 1}, snap.Position)
		assert.Positive(t, snap.Shortest)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 99, 3)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})
}

func TestGameServiceOwnership(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t)

	snap, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 9, 5)
	require.NoError(t, err)

	_, err = f.svc.Session(ctx, uuid.New(), f.player.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	stranger := uuid.New()
	_, err = f.svc.Session(ctx, snap.ID, stranger)
	assert.ErrorIs(t, err, ErrNotSessionOwner)
	_, _, err = f.svc.Move(ctx, snap.ID, stranger, game.Down)
	assert.ErrorIs(t, err, ErrNotSessionOwner)
	assert.ErrorIs(t, f.svc.Abandon(ctx, snap.ID, stranger), ErrNotSessionOwner)
}

func TestGameServicePlayThrough(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t)

	snap, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 13, 21)
	require.NoError(t, err)

	hint, err := f.svc.Hint(ctx, snap.ID, f.player.ID, pathfinder.Dijkstra)
	require.NoError(t, err)
	require.Equal(t, snap.Shortest, hint.Len())

	_, err = f.svc.Result(ctx, snap.ID, f.player.ID)
	assert.ErrorIs(t, err, game.ErrSessionNotFinished)

	var last game.Snapshot
	for _, d := range directions(t, hint) {
		f.clock.Advance(time.Second)
		var moved bool
		last, moved, err = f.svc.Move(ctx, snap.ID, f.player.ID, d)
		require.NoError(t, err)
		require.True(t, moved)
	}
	assert.Equal(t, game.Finished, last.State)

	_, _, err = f.svc.Move(ctx, snap.ID, f.player.ID, game.Up)
	assert.ErrorIs(t, err, game.ErrSessionClosed)
	_, err = f.svc.Hint(ctx, snap.ID, f.player.ID, pathfinder.BFS)
	assert.ErrorIs(t, err, game.ErrSessionClosed)

	res, err := f.svc.Result(ctx, snap.ID, f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Efficiency)
	assert.Equal(t, int64(hint.Len()), res.ElapsedSeconds)

	t.Run("result is stored", func(t *testing.T) {
		stored, err := f.svc.Results(ctx, f.player.ID, 5)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, res.Score, stored[0].Score)
	})

	t.Run("score is on the board", func(t *testing.T) {
		standings, err := f.svc.Leaderboard(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), standings.Players)
		require.Len(t, standings.Entries, 1)
		assert.Equal(t, "theseus", standings.Entries[0].Username)
		assert.Equal(t, res.Score, standings.Entries[0].Score)
	})

	t.Run("player stats are updated", func(t *testing.T) {
		u, err := f.users.ByID(f.player.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, u.GamesPlayed)
		assert.Equal(t, res.Score, u.BestScore)
	})
}

func TestGameServiceStorageFailures(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t)
	f.results.failing = true
	f.board.failing = true

	snap, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 9, 8)
	require.NoError(t, err)
	hint, err := f.svc.Hint(ctx, snap.ID, f.player.ID, pathfinder.BFS)
	require.NoError(t, err)

	for _, d := range directions(t, hint) {
		_, _, err := f.svc.Move(ctx, snap.ID, f.player.ID, d)
		require.NoError(t, err)
	}

	_, err = f.svc.Result(ctx, snap.ID, f.player.ID)
	assert.NoError(t, err)
}

func TestGameServiceBlockedMove(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t)

	snap, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 9, 4)
	require.NoError(t, err)

	// (1,0) is the outer wall
	after, moved, err := f.svc.Move(ctx, snap.ID, f.player.ID, game.Up)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 0, after.Moves)
	assert.Equal(t, game.EventBlocked, after.Events[len(after.Events)-1].Type)
}

func TestGameServiceAbandonAndSweep(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t)

	snap, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 9, 6)
	require.NoError(t, err)

	require.NoError(t, f.svc.Abandon(ctx, snap.ID, f.player.ID))
	assert.ErrorIs(t, f.svc.Abandon(ctx, snap.ID, f.player.ID), game.ErrSessionClosed)

	got, err := f.svc.Session(ctx, snap.ID, f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Abandoned, got.State)

	f.clock.Advance(2 * time.Minute)
	_, err = f.svc.Start(ctx, f.player.ID, f.player.Username, 9, 7)
	require.NoError(t, err)

	_, err = f.svc.Session(ctx, snap.ID, f.player.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGameServiceConcurrentMovesFinishOnce(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t)
	dirs := []game.Direction{game.Up, game.Down, game.Left, game.Right}

	var ids []uuid.UUID
	for seed := int64(1); seed <= 3; seed++ {
		snap, err := f.svc.Start(ctx, f.player.ID, f.player.Username, 5, seed)
		require.NoError(t, err)
		ids = append(ids, snap.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(id uuid.UUID, seed uint64) {
				defer wg.Done()
				r := rand.New(rand.NewPCG(seed, seed))
				for n := 0; n < 10000; n++ {
					if _, _, err := f.svc.Move(ctx, id, f.player.ID, dirs[r.IntN(len(dirs))]); err != nil {
						return
					}
				}
			}(id, uint64(w+1))
		}
	}
	wg.Wait()

	stored, err := f.svc.Results(ctx, f.player.ID, 10)
	require.NoError(t, err)
	assert.Len(t, stored, len(ids))

	u, err := f.users.ByID(f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, len(ids), u.GamesPlayed)

	for _, id := range ids {
		res, err := f.svc.Result(ctx, id, f.player.ID)
		require.NoError(t, err)

		saved := 0
		for _, s := range stored {
			if s.SessionID == id {
				saved++
				assert.Equal(t, res.ID, s.ID)
			}
		}
		assert.Equal(t, 1, saved, "session %s", id)
	}
}
