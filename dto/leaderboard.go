package dto

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Wins   int    `json:"wins"`
}

type GetLeaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}
