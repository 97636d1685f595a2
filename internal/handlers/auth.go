package handlers

import (
	"context"
	"net/http"

	"theinsight/internal/models"
	"theinsight/internal/reqctx"
	"theinsight/internal/utils/helpers"
)

// AuthService нужен хендлеру для входа и профиля.
type AuthService interface {
	LoginUser(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Вход в админку
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.LoginRequest true "Email и пароль"
// @Success 200 {object} helpers.Response{data=models.LoginResponse}
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response "Неверный email или пароль"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	resp, err := h.authService.LoginUser(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Error logging in")
		return
	}
	helpers.Message(w, http.StatusOK, "Login successful", resp)
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.Response{data=models.User}
// @Failure 401 {object} helpers.Response
// @Security ApiKeyAuth
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Access token is required")
		return
	}
	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching user")
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}
