package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"player", "captain", "coach", "manager", " Captain "} {
		_, err := ParseRole(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseRole("goalkeeper")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestPlanItemsUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    PlanItems
		wantErr bool
	}{
		{"native array", `["dribbling","free throws"]`, PlanItems{"dribbling", "free throws"}, false},
		{"legacy encoded string", `"[\"dribbling\",\"free throws\"]"`, PlanItems{"dribbling", "free throws"}, false},
		{"empty string", `""`, PlanItems{}, false},
		{"null", `null`, nil, false},
		{"plain text string", `"just run"`, nil, true},
		{"number", `42`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Plan PlanItems `json:"plan_content"`
			}
			err := json.Unmarshal([]byte(`{"plan_content":`+tt.in+`}`), &body)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, body.Plan)
		})
	}
}

func TestLeaveType(t *testing.T) {
	id := 3
	assert.Equal(t, LeaveTypeGeneral, (&LeaveRequest{}).Type())
	assert.Equal(t, LeaveTypeTraining, (&LeaveRequest{TrainingID: &id}).Type())
	assert.Equal(t, LeaveTypeMatch, (&LeaveRequest{MatchID: &id}).Type())
}

func TestMatchResult(t *testing.T) {
	assert.Equal(t, ResultWin, (&Match{OurScore: 80, OpponentScore: 71}).Result())
	assert.Equal(t, ResultLoss, (&Match{OurScore: 60, OpponentScore: 71}).Result())
	assert.Equal(t, ResultDraw, (&Match{}).Result())
}

func TestUserProfile(t *testing.T) {
	u := &User{Username: "p1"}
	assert.Equal(t, "p1", u.DisplayName())
	assert.False(t, u.ProfileComplete())

	u.RealName = "Li Wei"
	u.StudentID = "2023001"
	assert.Equal(t, "Li Wei", u.DisplayName())
	assert.True(t, u.ProfileComplete())
}
