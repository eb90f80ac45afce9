package dto

// LeaderboardEntry is one submission summary on the public leaderboard.
// ElapsedSeconds is nil when the submission did not report a completion time.
type LeaderboardEntry struct {
	Timestamp      string  `json:"timestamp"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	ChallengeID    string  `json:"challenge_id"`
	Title          string  `json:"title"`
	Score          float64 `json:"score"`
	ElapsedSeconds *int    `json:"elapsed_seconds,omitempty"`
}

// LeaderboardResponse wraps the sorted leaderboard entries.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
