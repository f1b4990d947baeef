// Package permissions is the single place that decides which role may perform
// which action. Handlers and services never compare role strings themselves.
package permissions

import "github.com/Dosada05/team-manager/models"

type Action string

const (
	CreateTraining   Action = "training.create"
	DeleteTraining   Action = "training.delete"
	CreateMatch      Action = "match.create"
	UpdateMatchScore Action = "match.update_score"
	DeleteMatch      Action = "match.delete"
	SignUpForMatch   Action = "match.signup"
	CreateVenue      Action = "venue.create"
	CreateLeave      Action = "leave.create"
	CreatePhoto      Action = "photo.create"
	DeletePhoto      Action = "photo.delete"
	ViewAllLeaves    Action = "leave.view_all"
	ViewAllCheckins  Action = "checkin.view_all"
)

var matrix = map[Action]map[models.Role]bool{
	CreateTraining:   {models.RoleCaptain: true},
	DeleteTraining:   {models.RoleCaptain: true},
	CreateMatch:      {models.RoleCaptain: true},
	UpdateMatchScore: {models.RoleCaptain: true},
	DeleteMatch:      {models.RoleCaptain: true},
	SignUpForMatch:   {models.RolePlayer: true, models.RoleCaptain: true},
	CreateVenue:      {models.RoleCaptain: true, models.RoleManager: true},
	CreateLeave:      {models.RolePlayer: true, models.RoleCaptain: true, models.RoleManager: true},
	CreatePhoto:      {models.RoleCaptain: true},
	DeletePhoto:      {models.RoleCaptain: true},
	ViewAllLeaves:    {models.RoleCaptain: true, models.RoleCoach: true},
	ViewAllCheckins:  {models.RoleCaptain: true, models.RoleCoach: true},
}

// CanPerform reports whether role may perform action. Unknown roles and
// unknown actions are always denied.
func CanPerform(role models.Role, action Action) bool {
	allowed, ok := matrix[action]
	if !ok {
		return false
	}
	return allowed[role]
}

// Actions returns every action known to the gate.
func Actions() []Action {
	return []Action{
		CreateTraining, DeleteTraining,
		CreateMatch, UpdateMatchScore, DeleteMatch, SignUpForMatch,
		CreateVenue, CreateLeave,
		CreatePhoto, DeletePhoto,
		ViewAllLeaves, ViewAllCheckins,
	}
}

// AllowedRoles lists the roles permitted to perform action, in the order of
// models.Roles.
func AllowedRoles(action Action) []models.Role {
	var roles []models.Role
	for _, r := range models.Roles {
		if CanPerform(r, action) {
			roles = append(roles, r)
		}
	}
	return roles
}
