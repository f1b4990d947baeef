package models

type LeaderboardEntry struct {
	UserID   int    `json:"user_id"`
	Name     string `json:"name"`
	Checkins int    `json:"count"`
}

type AttendanceStats struct {
	Rate           float64 `json:"rate"`
	Leaves         int     `json:"leaves"`
	TotalTrainings int     `json:"total_trainings"`
	TotalPlayers   int     `json:"total_players"`
}

type MatchTrendPoint struct {
	Date          string      `json:"date"`
	Opponent      string      `json:"opponent"`
	OurScore      int         `json:"our_score"`
	OpponentScore int         `json:"opponent_score"`
	Result        MatchResult `json:"result"`
}

type DashboardStats struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Attendance  AttendanceStats    `json:"attendance"`
	MatchTrend  []MatchTrendPoint  `json:"match_trend"`
}
