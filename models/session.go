package models

import "time"

// Session is the authenticated caller of a single request. It is built by the
// auth middleware from a verified token and handed to services explicitly.
type Session struct {
	UserID    int
	Username  string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

func (s *Session) IsZero() bool {
	return s == nil || s.UserID == 0
}
