package dto

import "github.com/prompt-arena/arena-api/internal/scoring"

// ProgressResponse is a team's derived round-unlock state plus totals.
type ProgressResponse struct {
	TeamID     uint                    `json:"team_id"`
	TotalScore float64                 `json:"total_score"`
	Rounds     []scoring.RoundProgress `json:"rounds"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	TeamID     uint    `json:"team_id"`
	Name       string  `json:"name"`
	TotalScore float64 `json:"total_score"`
}

// LeaderboardResponse is the ranked team list, possibly served from cache.
type LeaderboardResponse struct {
	Entries  []LeaderboardEntry `json:"entries"`
	CacheHit bool               `json:"cache_hit,omitempty"`
}
