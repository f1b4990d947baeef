package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type CheckinHandler struct {
	checkinService services.CheckinService
}

func NewCheckinHandler(cs services.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: cs}
}

// ListCheckins godoc
// @Summary Личные тренировки
// @Tags personal_trainings
// @Description Капитан и тренер видят отметки всех, остальные только свои
// @Produce json
// @Success 200 {array} models.CheckinView
// @Security BearerAuth
// @Router /personal_trainings [get]
func (h *CheckinHandler) ListCheckins(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	checkins, err := h.checkinService.List(r.Context(), session)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, checkins, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LogCheckin godoc
// @Summary Отметка личной тренировки
// @Tags personal_trainings
// @Accept json
// @Produce json
// @Param input body services.CreateCheckinInput true "Упражнение и фото"
// @Success 201 {object} models.PersonalCheckin
// @Failure 400 {object} map[string]string "validation error"
// @Security BearerAuth
// @Router /personal_trainings [post]
func (h *CheckinHandler) LogCheckin(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateCheckinInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	checkin, err := h.checkinService.Log(r.Context(), session, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, checkin, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
