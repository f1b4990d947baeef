package models

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RolePlayer  Role = "player"
	RoleCaptain Role = "captain"
	RoleCoach   Role = "coach"
	RoleManager Role = "manager"
)

var Roles = []Role{RolePlayer, RoleCaptain, RoleCoach, RoleManager}

// ParseRole принимает только одно из четырёх известных значений.
func ParseRole(s string) (Role, error) {
	role := Role(strings.TrimSpace(strings.ToLower(s)))
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RolePlayer, RoleCaptain, RoleCoach, RoleManager:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	RealName     string    `json:"real_name"`
	StudentID    string    `json:"student_id"`
	Bio          *string   `json:"bio,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName возвращает настоящее имя, если оно заполнено, иначе username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if strings.TrimSpace(u.RealName) != "" {
		return u.RealName
	}
	return u.Username
}

// ProfileComplete: для записи на матч нужны имя и номер студбилета.
func (u *User) ProfileComplete() bool {
	return u != nil && strings.TrimSpace(u.RealName) != "" && strings.TrimSpace(u.StudentID) != ""
}
