package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/team-manager/models"
)

func TestRequestLeaveValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)
	player := env.member(t, "p1", models.RolePlayer)
	training, err := env.svc.Trainings.Create(ctx, captain, CreateTrainingInput{StartTime: "2024-05-04 09:00", EndTime: "2024-05-04 11:00"})
	require.NoError(t, err)
	m := createMatch(t, env, captain, "Eagles")
	missing := 4242

	tests := []struct {
		name    string
		input   CreateLeaveInput
		wantErr error
	}{
		{"zero duration", CreateLeaveInput{TrainingID: &training.ID, DurationHours: 0, Reason: "x"}, ErrInvalidDuration},
		{"negative duration", CreateLeaveInput{TrainingID: &training.ID, DurationHours: -2, Reason: "x"}, ErrInvalidDuration},
		{"duration rounds to zero", CreateLeaveInput{TrainingID: &training.ID, DurationHours: 0.001, Reason: "x"}, ErrInvalidDuration},
		{"duration too long", CreateLeaveInput{TrainingID: &training.ID, DurationHours: 100000, Reason: "x"}, ErrInvalidDuration},
		{"missing reason", CreateLeaveInput{DurationHours: 1, Reason: "  "}, ErrValidation},
		{"unknown training", CreateLeaveInput{TrainingID: &missing, DurationHours: 1, Reason: "x"}, ErrLeaveTargetNotFound},
		{"unknown match", CreateLeaveInput{MatchID: &missing, DurationHours: 1, Reason: "x"}, ErrLeaveTargetNotFound},
		{"training and match", CreateLeaveInput{TrainingID: &training.ID, MatchID: &m.ID, DurationHours: 1, Reason: "x"}, ErrLeaveTargetAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Leaves.Request(ctx, player, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, env.store.leaves)
		})
	}
}

func TestRequestLeaveRoundsDuration(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	player := env.member(t, "p1", models.RolePlayer)

	leave, err := env.svc.Leaves.Request(ctx, player, CreateLeaveInput{DurationHours: 1.257, Reason: "exam"})
	require.NoError(t, err)
	assert.Equal(t, 1.26, leave.DurationHours)

	leave, err = env.svc.Leaves.Request(ctx, player, CreateLeaveInput{DurationHours: MaxLeaveHours, Reason: "season off"})
	require.NoError(t, err)
	assert.Equal(t, MaxLeaveHours, leave.DurationHours)
}

func TestRequestLeaveGate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	coach := env.member(t, "coach", models.RoleCoach)
	manager := env.member(t, "mgr", models.RoleManager)

	_, err := env.svc.Leaves.Request(ctx, coach, CreateLeaveInput{DurationHours: 1, Reason: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	leave, err := env.svc.Leaves.Request(ctx, manager, CreateLeaveInput{DurationHours: 1, Reason: "conference"})
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusPending, leave.Status)
	assert.Equal(t, models.LeaveTypeGeneral, leave.Type())
}

func TestListLeavesVisibility(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)
	coach := env.member(t, "coach", models.RoleCoach)
	p1 := env.member(t, "p1", models.RolePlayer)
	p2 := env.member(t, "p2", models.RolePlayer)
	m := createMatch(t, env, captain, "Eagles")

	_, err := env.svc.Leaves.Request(ctx, p1, CreateLeaveInput{DurationHours: 1, Reason: "a"})
	require.NoError(t, err)
	_, err = env.svc.Leaves.Request(ctx, p2, CreateLeaveInput{MatchID: &m.ID, DurationHours: 2, Reason: "b"})
	require.NoError(t, err)

	for _, s := range []models.Session{captain, coach} {
		all, err := env.svc.Leaves.List(ctx, s)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	}

	own, err := env.svc.Leaves.List(ctx, p2)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "P2", own[0].RealName)
	assert.Equal(t, models.LeaveTypeMatch, own[0].Type)
	require.NotNil(t, own[0].MatchOpponent)
	assert.Equal(t, "Eagles", *own[0].MatchOpponent)

	_, err = env.svc.Leaves.List(ctx, models.Session{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
