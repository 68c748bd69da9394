package i

import (
	"context"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/google/uuid"
)

// GameService runs single player sessions.
type GameService interface {
	Start(ctx context.Context, playerID uuid.UUID, username string, size int, seed int64) (game.Snapshot, error)
	Move(ctx context.Context, sessionID, playerID uuid.UUID, dir game.Direction) (game.Snapshot, bool, error)
	Session(ctx context.Context, sessionID, playerID uuid.UUID) (game.Snapshot, error)
	Hint(ctx context.Context, sessionID, playerID uuid.UUID, alg pathfinder.Algorithm) (pathfinder.Path, error)
	Abandon(ctx context.Context, sessionID, playerID uuid.UUID) error
	Result(ctx context.Context, sessionID, playerID uuid.UUID) (game.Result, error)
	Leaderboard(ctx context.Context, n int64) (game.Standings, error)
	Results(ctx context.Context, playerID uuid.UUID, n int64) ([]game.Result, error)
}
