package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/team-manager/models"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		action Action
		want   []models.Role
	}{
		{CreateTraining, []models.Role{models.RoleCaptain}},
		{DeleteTraining, []models.Role{models.RoleCaptain}},
		{CreateMatch, []models.Role{models.RoleCaptain}},
		{UpdateMatchScore, []models.Role{models.RoleCaptain}},
		{DeleteMatch, []models.Role{models.RoleCaptain}},
		{SignUpForMatch, []models.Role{models.RolePlayer, models.RoleCaptain}},
		{CreateVenue, []models.Role{models.RoleCaptain, models.RoleManager}},
		{CreateLeave, []models.Role{models.RolePlayer, models.RoleCaptain, models.RoleManager}},
		{CreatePhoto, []models.Role{models.RoleCaptain}},
		{DeletePhoto, []models.Role{models.RoleCaptain}},
		{ViewAllLeaves, []models.Role{models.RoleCaptain, models.RoleCoach}},
		{ViewAllCheckins, []models.Role{models.RoleCaptain, models.RoleCoach}},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedRoles(tt.action))
		})
	}
}

func TestCanPerformIsDeterministic(t *testing.T) {
	roles := append([]models.Role{"goalkeeper", ""}, models.Roles...)
	for _, role := range roles {
		for _, action := range Actions() {
			first := CanPerform(role, action)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, CanPerform(role, action), "role=%s action=%s", role, action)
			}
		}
	}
}

func TestUnknownRoleAndActionDenied(t *testing.T) {
	for _, action := range Actions() {
		assert.False(t, CanPerform("goalkeeper", action))
	}
	for _, role := range models.Roles {
		assert.False(t, CanPerform(role, "training.rename"))
	}
}
