package models

import "time"

type MatchResult string

const (
	ResultWin  MatchResult = "Win"
	ResultLoss MatchResult = "Loss"
	ResultDraw MatchResult = "Draw"
)

type Match struct {
	ID            int       `json:"id"`
	MatchTime     time.Time `json:"match_time"`
	Opponent      string    `json:"opponent"`
	Location      string    `json:"location"`
	OurScore      int       `json:"our_score"`
	OpponentScore int       `json:"opponent_score"`
	IsFinished    bool      `json:"is_finished"`
	CreatedBy     int       `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func (m *Match) Result() MatchResult {
	switch {
	case m.OurScore > m.OpponentScore:
		return ResultWin
	case m.OurScore < m.OpponentScore:
		return ResultLoss
	default:
		return ResultDraw
	}
}

type MatchSignup struct {
	ID        int       `json:"id"`
	MatchID   int       `json:"match_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchParticipant: запись на матч вместе с данными пользователя.
type MatchParticipant struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	RealName  string `json:"real_name"`
	StudentID string `json:"student_id"`
}

type MatchView struct {
	Match
	Participants []MatchParticipant `json:"participants"`
	IsSignedUp   bool               `json:"is_signed_up"`
}
