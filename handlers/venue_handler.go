package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(vs services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: vs}
}

// ListVenues godoc
// @Summary Бронирования площадок
// @Tags venues
// @Produce json
// @Success 200 {array} models.VenueReservation
// @Security BearerAuth
// @Router /venues [get]
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, venues, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReserveVenue godoc
// @Summary Бронирование площадки
// @Tags venues
// @Description Капитан или менеджер
// @Accept json
// @Produce json
// @Param input body services.CreateVenueInput true "Интервал и подтверждение"
// @Success 201 {object} models.VenueReservation
// @Failure 400 {object} map[string]string "validation error"
// @Failure 403 {object} map[string]string "forbidden"
// @Security BearerAuth
// @Router /venues [post]
func (h *VenueHandler) ReserveVenue(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Reserve(r.Context(), session, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, venue, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
