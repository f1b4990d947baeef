package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// ListUsers godoc
// @Summary Список участников команды
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, users, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(r.Context(), session)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateProfile godoc
// @Summary Обновление своего профиля
// @Tags users
// @Description Меняет только переданные поля. Пароль не короче 6 символов.
// @Accept json
// @Produce json
// @Param input body services.UpdateProfileInput true "Поля профиля"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "validation error"
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var input services.UpdateProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), session, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
