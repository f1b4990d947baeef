package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type LeaveHandler struct {
	leaveService services.LeaveService
}

func NewLeaveHandler(ls services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: ls}
}

// ListLeaves godoc
// @Summary Заявки на отпуск
// @Tags leaves
// @Description Капитан и тренер видят все заявки, остальные только свои
// @Produce json
// @Success 200 {array} models.LeaveView
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /leaves [get]
func (h *LeaveHandler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	leaves, err := h.leaveService.List(r.Context(), session)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, leaves, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RequestLeave godoc
// @Summary Заявка на отпуск
// @Tags leaves
// @Description Может ссылаться на тренировку или на матч. duration_hours > 0.
// @Accept json
// @Produce json
// @Param input body services.CreateLeaveInput true "Заявка"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} map[string]string "validation error"
// @Failure 403 {object} map[string]string "forbidden"
// @Security BearerAuth
// @Router /leaves [post]
func (h *LeaveHandler) RequestLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateLeaveInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	leave, err := h.leaveService.Request(r.Context(), session, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, leave, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
