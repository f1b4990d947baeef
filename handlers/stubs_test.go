package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/team-manager/middleware"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/services"
)

var (
	captain = models.Session{UserID: 1, Username: "cap", Role: models.RoleCaptain}
	player  = models.Session{UserID: 2, Username: "ann", Role: models.RolePlayer}
)

type stubAuth struct {
	registered services.RegisterInput
	loginErr   error
	loggedOut  models.Session
}

func (s *stubAuth) Register(_ context.Context, input services.RegisterInput) (*models.User, error) {
	s.registered = input
	return &models.User{ID: 3, Username: input.Username, PasswordHash: "hash", Role: models.Role(input.Role)}, nil
}

func (s *stubAuth) Login(_ context.Context, input services.LoginInput) (*services.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &services.LoginResult{Token: "jwt-token", User: &models.User{ID: 1, Username: input.Username}}, nil
}

func (s *stubAuth) Authenticate(context.Context, string) (models.Session, error) {
	return captain, nil
}

func (s *stubAuth) Logout(_ context.Context, session models.Session) error {
	s.loggedOut = session
	return nil
}

type stubTrainings struct {
	created  services.CreateTrainingInput
	session  models.Session
	err      error
	deleteID int
}

func (s *stubTrainings) Create(_ context.Context, session models.Session, input services.CreateTrainingInput) (*models.TrainingSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.session, s.created = session, input
	return &models.TrainingSession{ID: 10, PlanContent: input.PlanContent, AuthorID: session.UserID}, nil
}

func (s *stubTrainings) List(context.Context) ([]*models.TrainingSession, error) {
	return []*models.TrainingSession{{ID: 10}}, nil
}

func (s *stubTrainings) Delete(_ context.Context, _ models.Session, id int) (*services.CascadeReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.deleteID = id
	return &services.CascadeReport{Kind: "training", ID: id, State: services.CascadeGone, Removed: map[string]int64{"leave_requests": 2}}, nil
}

type stubMatches struct {
	signupErr error
	signedUp  []int
}

func (s *stubMatches) Create(_ context.Context, _ models.Session, input services.CreateMatchInput) (*models.Match, error) {
	return &models.Match{ID: 7, Opponent: input.Opponent}, nil
}

func (s *stubMatches) List(context.Context, models.Session) ([]*models.MatchView, error) {
	return nil, nil
}

func (s *stubMatches) UpdateScore(_ context.Context, _ models.Session, id int, input services.UpdateScoreInput) (*models.Match, error) {
	m := &models.Match{ID: id}
	if input.OurScore != nil {
		m.OurScore = *input.OurScore
	}
	return m, nil
}

func (s *stubMatches) Delete(_ context.Context, _ models.Session, id int) (*services.CascadeReport, error) {
	return &services.CascadeReport{Kind: "match", ID: id, State: services.CascadeGone}, nil
}

func (s *stubMatches) SignUp(_ context.Context, session models.Session, matchID int) (*models.MatchSignup, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	s.signedUp = append(s.signedUp, matchID)
	return &models.MatchSignup{ID: 1, MatchID: matchID, UserID: session.UserID}, nil
}

type stubUploads struct {
	filename string
	body     []byte
	err      error
}

func (s *stubUploads) Upload(_ context.Context, _ models.Session, filename string, _ int64, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.filename = filename
	s.body, _ = io.ReadAll(body)
	return "https://bucket.test/uploads/2026/10/abc.png", nil
}

// newRequest собирает запрос с сессией и URL-параметрами chi, как после роутера.
func newRequest(t *testing.T, method, target string, body interface{}, session *models.Session, params map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := req.Context()
	if session != nil {
		ctx = middleware.WithSession(ctx, *session)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
