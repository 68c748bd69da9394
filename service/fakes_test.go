package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/identity"
	logger "github.com/beka-birhanu/maze-runner/infrastruture/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errStorageDown = errors.New("storage down")

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("TEST", logger.ColorYellow, io.Discard)
	require.NoError(t, err)
	return l
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (r *fakeUserRepo) Save(u *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if existing.Username == u.Username && id != u.ID {
			return errors.New("username conflict")
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) ByID(id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *fakeUserRepo) ByUsername(username string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, errors.New("user not found")
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results []game.Result
	failing bool
}

func (r *fakeResultRepo) Save(_ context.Context, res *game.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStorageDown
	}
	r.results = append(r.results, *res)
	return nil
}

func (r *fakeResultRepo) ByPlayer(_ context.Context, playerID uuid.UUID, limit int64) ([]game.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []game.Result{}
	for idx := len(r.results) - 1; idx >= 0 && int64(len(out)) < limit; idx-- {
		if r.results[idx].PlayerID == playerID {
			out = append(out, r.results[idx])
		}
	}
	return out, nil
}

type fakeLeaderboard struct {
	mu      sync.Mutex
	best    map[uuid.UUID]game.LeaderboardEntry
	failing bool
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{best: make(map[uuid.UUID]game.LeaderboardEntry)}
}

func (l *fakeLeaderboard) Submit(_ context.Context, e game.LeaderboardEntry) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failing {
		return false, errStorageDown
	}
	if cur, ok := l.best[e.PlayerID]; ok && cur.Score >= e.Score {
		return false, nil
	}
	l.best[e.PlayerID] = e
	return true, nil
}

func (l *fakeLeaderboard) Top(_ context.Context, n int64) ([]game.LeaderboardEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]game.LeaderboardEntry, 0, len(l.best))
	for _, e := range l.best {
		out = append(out, e)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	if int64(len(out)) > n {
		out = out[:n]
	}
	for idx := range out {
		out[idx].Rank = idx + 1
	}
	return out, nil
}

func (l *fakeLeaderboard) Count(_ context.Context) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failing {
		return 0, errStorageDown
	}
	return int64(len(l.best)), nil
}

// fakeClock only moves when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
