package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"leave target", services.ErrLeaveTargetNotFound, http.StatusBadRequest, "validation"},
		{"wrapped timestamp", fmt.Errorf("create: %w", services.ErrInvalidTimestamp), http.StatusBadRequest, "validation"},
		{"already signed up", services.ErrAlreadySignedUp, http.StatusConflict, "conflict"},
		{"match not found", services.ErrMatchNotFound, http.StatusNotFound, "not_found"},
		{"storage", &services.StorageError{Op: "delete match", Err: errors.New("connection reset")}, http.StatusInternalServerError, "storage"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "storage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantKind, body["kind"])
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, body["error"], "connection reset")
			}
		})
	}
}

func TestMapServiceErrorToHTTPFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	err := services.FieldErrors{"opponent": "required"}
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation", body["kind"])
	assert.Equal(t, map[string]interface{}{"opponent": "required"}, body["error"])
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"username":"ann","password":"secret"}`, ""},
		{"empty", ``, "body must not be empty"},
		{"unknown field", `{"username":"ann","admin":true}`, "unknown key"},
		{"two values", `{"username":"ann"}{"username":"bob"}`, "single JSON value"},
		{"wrong type", `{"username":42}`, `field "username"`},
		{"broken", `{"username":`, "badly-formed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input services.LoginInput
			rec := httptest.NewRecorder()
			err := readJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "ann", input.Username)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetIDFromURL(t *testing.T) {
	id, err := getIDFromURL(newRequest(t, http.MethodGet, "/", nil, nil, map[string]string{"matchID": "42"}), "matchID")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"abc", "0", "-3"} {
		_, err := getIDFromURL(newRequest(t, http.MethodGet, "/", nil, nil, map[string]string{"matchID": raw}), "matchID")
		assert.Error(t, err, raw)
	}

	_, err = getIDFromURL(newRequest(t, http.MethodGet, "/", nil, nil, nil), "matchID")
	assert.Error(t, err)
}

func TestAuthHandler(t *testing.T) {
	auth := &stubAuth{}
	h := NewAuthHandler(auth)

	t.Run("register hides password hash", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, newRequest(t, http.MethodPost, "/api/register", services.RegisterInput{
			Username: "ann", Password: "secret", Role: "player", RealName: "Ann", StudentID: "S-1",
		}, nil, nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "hash")
		assert.Equal(t, "S-1", auth.registered.StudentID)
	})

	t.Run("login returns token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(t, http.MethodPost, "/api/login", services.LoginInput{Username: "ann", Password: "secret"}, nil, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jwt-token", decodeBody(t, rec)["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		auth.loginErr = services.ErrInvalidCredentials
		defer func() { auth.loginErr = nil }()

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(t, http.MethodPost, "/api/login", services.LoginInput{Username: "ann", Password: "nope"}, nil, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("logout revokes caller session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Logout(rec, newRequest(t, http.MethodPost, "/api/logout", nil, &player, nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, player.UserID, auth.loggedOut.UserID)
	})
}

func TestTrainingHandlerCreate(t *testing.T) {
	trainings := &stubTrainings{}
	h := NewTrainingHandler(trainings)

	rec := httptest.NewRecorder()
	body := `{"start_time":"2026-10-20 18:00","end_time":"2026-10-20 20:00","plan_content":"[\"dribbling\",\"free throws\"]"}`
	h.CreateTraining(rec, newRequest(t, http.MethodPost, "/api/trainings", body, &captain, nil))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, models.PlanItems{"dribbling", "free throws"}, trainings.created.PlanContent)
	assert.Equal(t, captain.UserID, trainings.session.UserID)
}

func TestTrainingHandlerCreateWithoutSession(t *testing.T) {
	rec := httptest.NewRecorder()
	NewTrainingHandler(&stubTrainings{}).CreateTraining(rec, newRequest(t, http.MethodPost, "/api/trainings", `{}`, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTrainingHandlerDelete(t *testing.T) {
	trainings := &stubTrainings{}
	h := NewTrainingHandler(trainings)

	rec := httptest.NewRecorder()
	h.DeleteTraining(rec, newRequest(t, http.MethodDelete, "/api/trainings/5", nil, &captain, map[string]string{"trainingID": "5"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, trainings.deleteID)
	body := decodeBody(t, rec)
	assert.Equal(t, "gone", body["state"])
	assert.Equal(t, map[string]interface{}{"leave_requests": float64(2)}, body["removed"])

	trainings.err = services.ErrTrainingNotFound
	rec = httptest.NewRecorder()
	h.DeleteTraining(rec, newRequest(t, http.MethodDelete, "/api/trainings/6", nil, &captain, map[string]string{"trainingID": "6"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchHandlerSignUp(t *testing.T) {
	matches := &stubMatches{}
	h := NewMatchHandler(matches)

	rec := httptest.NewRecorder()
	h.SignUp(rec, newRequest(t, http.MethodPost, "/api/matches/7/signup", nil, &player, map[string]string{"matchID": "7"}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []int{7}, matches.signedUp)

	matches.signupErr = services.ErrAlreadySignedUp
	rec = httptest.NewRecorder()
	h.SignUp(rec, newRequest(t, http.MethodPost, "/api/matches/7/signup", nil, &player, map[string]string{"matchID": "7"}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeBody(t, rec)["kind"])

	rec = httptest.NewRecorder()
	h.SignUp(rec, newRequest(t, http.MethodPost, "/api/matches/x/signup", nil, &player, map[string]string{"matchID": "x"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchHandlerUpdateScore(t *testing.T) {
	h := NewMatchHandler(&stubMatches{})

	rec := httptest.NewRecorder()
	h.UpdateScore(rec, newRequest(t, http.MethodPut, "/api/matches/3", `{"our_score":3,"is_finished":true}`, &captain, map[string]string{"matchID": "3"}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["id"])
	assert.Equal(t, float64(3), body["our_score"])
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := newRequest(t, http.MethodPost, "/api/upload", buf.String(), &player, nil)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	uploads := &stubUploads{}
	h := NewUploadHandler(uploads)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "file", "team.png", []byte("png-bytes")))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "https://bucket.test/uploads/2026/10/abc.png", decodeBody(t, rec)["url"])
	assert.Equal(t, "team.png", uploads.filename)
	assert.Equal(t, []byte("png-bytes"), uploads.body)
}

func TestUploadHandlerMissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	NewUploadHandler(&stubUploads{}).Upload(rec, multipartRequest(t, "", "", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation", body["kind"])
	assert.Equal(t, services.ErrUploadMissingFile.Error(), body["error"])
}

func TestUploadHandlerStorageUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	NewUploadHandler(&stubUploads{err: services.ErrUploadUnavailable}).Upload(rec, multipartRequest(t, "file", "team.png", []byte("x")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "storage", decodeBody(t, rec)["kind"])
}

func TestPing(t *testing.T) {
	rec := httptest.NewRecorder()
	Ping(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", decodeBody(t, rec)["message"])
}
