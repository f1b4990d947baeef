package models

import "time"

type PersonalCheckin struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ItemName  string    `json:"item_name"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

type CheckinView struct {
	PersonalCheckin
	Username string `json:"username"`
	RealName string `json:"real_name"`
}
