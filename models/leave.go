package models

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveType string

const (
	LeaveTypeTraining LeaveType = "training"
	LeaveTypeMatch    LeaveType = "match"
	LeaveTypeGeneral  LeaveType = "general"
)

type LeaveRequest struct {
	ID            int         `json:"id"`
	RequesterID   int         `json:"requester_id"`
	TrainingID    *int        `json:"training_id,omitempty"`
	MatchID       *int        `json:"match_id,omitempty"`
	DurationHours float64     `json:"duration_hours"`
	Reason        string      `json:"reason"`
	Status        LeaveStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (l *LeaveRequest) Type() LeaveType {
	switch {
	case l.MatchID != nil:
		return LeaveTypeMatch
	case l.TrainingID != nil:
		return LeaveTypeTraining
	default:
		return LeaveTypeGeneral
	}
}

// LeaveView is a leave request joined with its requester and the session it
// refers to.
type LeaveView struct {
	LeaveRequest
	Username      string     `json:"username"`
	RealName      string     `json:"real_name"`
	Type          LeaveType  `json:"type"`
	TrainingStart *time.Time `json:"training_start,omitempty"`
	MatchOpponent *string    `json:"match_opponent,omitempty"`
}
