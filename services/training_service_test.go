package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
)

func TestCreateTraining(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)

	training, err := env.svc.Trainings.Create(ctx, captain, CreateTrainingInput{
		StartTime:   "2024-05-04 09:00",
		EndTime:     "2024-05-04T11:00",
		PlanContent: models.PlanItems{"dribbling", "", "free throws"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, training.StartTime.Hour())
	assert.Equal(t, 11, training.EndTime.Hour())
	assert.Equal(t, models.PlanItems{"dribbling", "free throws"}, training.PlanContent)
	assert.Equal(t, captain.UserID, training.AuthorID)
	assert.Contains(t, env.published.types(), events.TrainingCreated)
}

func TestCreateTrainingNormalisesToUTC(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)

	training, err := env.svc.Trainings.Create(ctx, captain, CreateTrainingInput{
		StartTime:   "2024-05-04T09:00:00+03:00",
		EndTime:     "2024-05-04 11:00",
		PlanContent: models.PlanItems{"stretching"},
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, training.StartTime.Location())
	assert.Equal(t, 6, training.StartTime.Hour())
	assert.Equal(t, time.UTC, training.EndTime.Location())
	assert.Equal(t, 11, training.EndTime.Hour())
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 4, 9, 30, 0, 0, time.UTC)
	for _, value := range []string{
		"2024-05-04 09:30",
		"2024-05-04T09:30",
		" 2024-05-04 09:30:00 ",
		"2024-05-04T09:30:00Z",
		"2024-05-04T12:30:00+03:00",
		"2024-05-04T04:30:00-05:00",
	} {
		got, err := parseTimestamp("start_time", value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}

	_, err := parseTimestamp("start_time", "04.05.2024 09:30")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.Contains(t, err.Error(), "start_time")
}

func TestCreateTrainingRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)

	tests := []struct {
		name    string
		input   CreateTrainingInput
		wantErr error
	}{
		{"malformed start", CreateTrainingInput{StartTime: "tomorrow", EndTime: "2024-05-04 11:00"}, ErrInvalidTimestamp},
		{"malformed end", CreateTrainingInput{StartTime: "2024-05-04 09:00", EndTime: "11:00"}, ErrInvalidTimestamp},
		{"missing start", CreateTrainingInput{EndTime: "2024-05-04 11:00"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Trainings.Create(ctx, captain, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, env.store.trains)
		})
	}
}

func TestTrainingGate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)
	input := CreateTrainingInput{StartTime: "2024-05-04 09:00", EndTime: "2024-05-04 11:00"}

	for _, role := range []models.Role{models.RolePlayer, models.RoleCoach, models.RoleManager} {
		session := env.member(t, "u"+string(role), role)
		_, err := env.svc.Trainings.Create(ctx, session, input)
		assert.ErrorIs(t, err, ErrForbidden, role)
	}
	assert.Empty(t, env.store.trains)

	training, err := env.svc.Trainings.Create(ctx, captain, input)
	require.NoError(t, err)

	coach := env.member(t, "coach2", models.RoleCoach)
	_, err = env.svc.Trainings.Delete(ctx, coach, training.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, env.store.trains, 1)

	_, err = env.svc.Trainings.Create(ctx, models.Session{}, input)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteTrainingCascadesExactlyItsLeaves(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)
	player := env.member(t, "p1", models.RolePlayer)

	target, err := env.svc.Trainings.Create(ctx, captain, CreateTrainingInput{StartTime: "2024-05-04 09:00", EndTime: "2024-05-04 11:00"})
	require.NoError(t, err)
	other, err := env.svc.Trainings.Create(ctx, captain, CreateTrainingInput{StartTime: "2024-05-05 09:00", EndTime: "2024-05-05 11:00"})
	require.NoError(t, err)

	const n = 3
	for i := 0; i < n; i++ {
		_, err := env.svc.Leaves.Request(ctx, player, CreateLeaveInput{TrainingID: &target.ID, DurationHours: 1, Reason: "exam"})
		require.NoError(t, err)
	}
	_, err = env.svc.Leaves.Request(ctx, player, CreateLeaveInput{TrainingID: &other.ID, DurationHours: 2, Reason: "trip"})
	require.NoError(t, err)
	_, err = env.svc.Leaves.Request(ctx, player, CreateLeaveInput{DurationHours: 4, Reason: "general"})
	require.NoError(t, err)

	report, err := env.svc.Trainings.Delete(ctx, captain, target.ID)
	require.NoError(t, err)
	assert.Equal(t, CascadeGone, report.State)
	assert.EqualValues(t, n, report.Removed["leave_requests"])

	left, err := memLeaves{env.store}.ListByTraining(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Len(t, env.store.leaves, 2)
	assert.NotContains(t, env.store.trains, target.ID)
	assert.Equal(t, []string{"leave_requests", "trainings"}, env.store.deleteLog)
}

func TestDeleteTrainingRollsBackOnStorageFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)
	player := env.member(t, "p1", models.RolePlayer)

	training, err := env.svc.Trainings.Create(ctx, captain, CreateTrainingInput{StartTime: "2024-05-04 09:00", EndTime: "2024-05-04 11:00"})
	require.NoError(t, err)
	_, err = env.svc.Leaves.Request(ctx, player, CreateLeaveInput{TrainingID: &training.ID, DurationHours: 1, Reason: "exam"})
	require.NoError(t, err)

	env.store.failTrainingDelete = errors.New("connection reset")
	report, err := env.svc.Trainings.Delete(ctx, captain, training.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, "storage", Kind(err))
	assert.Equal(t, CascadeActive, report.State)
	assert.Len(t, env.store.leaves, 1, "dependents must be restored")
	assert.Contains(t, env.store.trains, training.ID)
	assert.NotContains(t, env.published.types(), events.TrainingDeleted)
}

func TestDeleteMissingTraining(t *testing.T) {
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)

	report, err := env.svc.Trainings.Delete(context.Background(), captain, 404)
	assert.ErrorIs(t, err, ErrTrainingNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, CascadeActive, report.State)
}

// Сценарий: капитан создаёт тренировку, игрок просит отпуск, капитан удаляет тренировку.
func TestTrainingLeaveScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	captain := env.member(t, "cap", models.RoleCaptain)
	player := env.member(t, "p1", models.RolePlayer)

	training, err := env.svc.Trainings.Create(ctx, captain, CreateTrainingInput{
		StartTime:   "2024-05-04 09:00",
		EndTime:     "2024-05-04 11:00",
		PlanContent: models.PlanItems{"dribbling", "free throws"},
	})
	require.NoError(t, err)

	_, err = env.svc.Leaves.Request(ctx, player, CreateLeaveInput{TrainingID: &training.ID, DurationHours: 1.5, Reason: "clinic"})
	require.NoError(t, err)

	leaves, err := env.svc.Leaves.List(ctx, captain)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, models.LeaveStatusPending, leaves[0].Status)
	assert.Equal(t, 1.5, leaves[0].DurationHours)
	require.NotNil(t, leaves[0].TrainingID)
	assert.Equal(t, training.ID, *leaves[0].TrainingID)
	assert.Equal(t, models.LeaveTypeTraining, leaves[0].Type)
	assert.Equal(t, "P1", leaves[0].RealName)

	_, err = env.svc.Trainings.Delete(ctx, captain, training.ID)
	require.NoError(t, err)

	leaves, err = env.svc.Leaves.List(ctx, captain)
	require.NoError(t, err)
	assert.Empty(t, leaves)
}
