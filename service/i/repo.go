package i

import (
	"context"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/identity"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *identity.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*identity.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*identity.User, error)
}

// ResultRepo stores the results of finished games.
type ResultRepo interface {
	Save(ctx context.Context, r *game.Result) error

	// ByPlayer returns up to limit results of a player, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]game.Result, error)
}

// Leaderboard ranks players by their best score.
type Leaderboard interface {
	// Submit records the entry unless the player already has a higher or
	// equal score. It reports whether the board changed.
	Submit(ctx context.Context, e game.LeaderboardEntry) (bool, error)

	// Top returns up to n entries, best first.
	Top(ctx context.Context, n int64) ([]game.LeaderboardEntry, error)

	// Count returns the number of players on the board.
	Count(ctx context.Context) (int64, error)
}
