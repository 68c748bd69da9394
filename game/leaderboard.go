package game

import "github.com/google/uuid"

// LeaderboardEntry is a player's best score and its position on the board.
// Rank starts at 1 and is zero for entries that were not read from a board.
type LeaderboardEntry struct {
	PlayerID uuid.UUID `json:"player_id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
	Rank     int       `json:"rank,omitempty"`
}

// Standings is the top of the board plus the number of ranked players.
type Standings struct {
	Players int64              `json:"players"`
	Entries []LeaderboardEntry `json:"entries"`
}

// EntryFor builds the leaderboard submission for a finished run.
func EntryFor(r Result) LeaderboardEntry {
	return LeaderboardEntry{PlayerID: r.PlayerID, Username: r.Username, Score: r.Score}
}
