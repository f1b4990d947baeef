package handlers

import (
	"net/http"

	"github.com/Dosada05/team-manager/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Register godoc
// @Summary Регистрация участника команды
// @Tags auth
// @Description Создаёт пользователя с ролью player, captain, coach или manager
// @Accept json
// @Produce json
// @Param input body services.RegisterInput true "Данные регистрации"
// @Success 201 {object} map[string]interface{} "user"
// @Failure 400 {object} map[string]string "validation error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Login godoc
// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Логин и пароль"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} map[string]string "invalid request body"
// @Failure 401 {object} map[string]string "invalid username or password"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout godoc
// @Summary Выход
// @Tags auth
// @Description Отзывает текущий токен до истечения его срока
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "unauthorized"
// @Security BearerAuth
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.authService.Logout(r.Context(), session); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
