package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// ListMatches godoc
// @Summary Список матчей
// @Tags matches
// @Description Матчи по возрастанию match_time с составом и флагом is_signed_up
// @Produce json
// @Success 200 {array} models.MatchView
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	matches, err := h.matchService.List(r.Context(), session)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Создание матча
// @Tags matches
// @Accept json
// @Produce json
// @Param input body services.CreateMatchInput true "Время, соперник, место"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string "validation error"
// @Failure 403 {object} map[string]string "forbidden"
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Create(r.Context(), session, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScore godoc
// @Summary Обновление счёта матча
// @Tags matches
// @Description Только капитан, последняя запись побеждает
// @Accept json
// @Produce json
// @Param matchID path int true "ID матча"
// @Param input body services.UpdateScoreInput true "Счёт и признак завершения"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string "validation error"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "match not found"
// @Security BearerAuth
// @Router /matches/{matchID} [put]
func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateScore(r.Context(), session, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch godoc
// @Summary Удаление матча
// @Tags matches
// @Description Удаляет записи на матч и заявки на отпуск по нему, затем сам матч
// @Produce json
// @Param matchID path int true "ID матча"
// @Success 200 {object} services.CascadeReport
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "match not found"
// @Security BearerAuth
// @Router /matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.matchService.Delete(r.Context(), session, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, report, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SignUp godoc
// @Summary Запись на матч
// @Tags matches
// @Description Игрок или капитан с заполненным профилем. Повторная запись даёт 409.
// @Produce json
// @Param matchID path int true "ID матча"
// @Success 201 {object} models.MatchSignup
// @Failure 400 {object} map[string]string "profile incomplete"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "match not found"
// @Failure 409 {object} map[string]string "already signed up"
// @Security BearerAuth
// @Router /matches/{matchID}/signup [post]
func (h *MatchHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	signup, err := h.matchService.SignUp(r.Context(), session, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, signup, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
