package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// Stats godoc
// @Summary Статистика команды
// @Tags dashboard
// @Description Топ-5 по личным тренировкам, посещаемость, последние 10 завершённых матчей
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Ping godoc
// @Summary Проверка доступности
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "message"
// @Router /ping [get]
func Ping(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "pong"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
