package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type TrainingHandler struct {
	trainingService services.TrainingService
}

func NewTrainingHandler(ts services.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: ts}
}

// ListTrainings godoc
// @Summary Список тренировок
// @Tags trainings
// @Description Сначала самые поздние по start_time
// @Produce json
// @Success 200 {array} models.TrainingSession
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /trainings [get]
func (h *TrainingHandler) ListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.trainingService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, trainings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTraining godoc
// @Summary Создание тренировки
// @Tags trainings
// @Description Только капитан. plan_content: массив строк или JSON-строка с массивом.
// @Accept json
// @Produce json
// @Param input body services.CreateTrainingInput true "Время и план"
// @Success 201 {object} models.TrainingSession
// @Failure 400 {object} map[string]string "validation error"
// @Failure 403 {object} map[string]string "forbidden"
// @Security BearerAuth
// @Router /trainings [post]
func (h *TrainingHandler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateTrainingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	training, err := h.trainingService.Create(r.Context(), session, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, training, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTraining godoc
// @Summary Удаление тренировки
// @Tags trainings
// @Description Только капитан. Вместе с тренировкой удаляются заявки на отпуск по ней.
// @Produce json
// @Param trainingID path int true "ID тренировки"
// @Success 200 {object} services.CascadeReport
// @Failure 400 {object} map[string]string "invalid id"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "training session not found"
// @Security BearerAuth
// @Router /trainings/{trainingID} [delete]
func (h *TrainingHandler) DeleteTraining(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	trainingID, err := getIDFromURL(r, "trainingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.trainingService.Delete(r.Context(), session, trainingID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, report, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
