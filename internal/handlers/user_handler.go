package handlers

import (
	"net/http"

	"screensynced_backend/internal/config"
	"screensynced_backend/internal/services"
	"screensynced_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	cookies     cookieWriter
}

func NewUserHandler(base *BaseHandler, userService services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		cookies:     cookieWriter{secure: cfg.IsProduction()},
	}
}

// RegisterRoutes регистрирует маршруты профиля. Все они защищены guard-ом.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(guard)
	{
		users.GET("/current-user", h.CurrentUser)
		users.PATCH("/update-details", h.UpdateDetails)
		users.PATCH("/change-password", h.ChangePassword)
		users.PATCH("/change-avatar", h.ChangeAvatar)
		users.DELETE("/delete", h.Delete)
	}
}

// CurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль аутентифицированного пользователя
// @Tags users
// @Produce json
// @Success 200 {object} dto.PrivateUser
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /users/current-user [get]
func (h *UserHandler) CurrentUser(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, identity.User)
}

// UpdateDetails godoc
// @Summary Обновить профиль
// @Description Обновляет email и/или отображаемое имя пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateDetailsRequest true "Новые данные профиля"
// @Success 200 {object} dto.PrivateUser
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /users/update-details [patch]
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateDetailsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateDetails(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Сменить пароль
// @Description Проверяет текущий пароль и устанавливает новый
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdatePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /users/change-password [patch]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), identity.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Password changed successfully"})
}

// ChangeAvatar godoc
// @Summary Сменить аватар
// @Description Загружает новый аватар и удаляет прежний из файлового хранилища
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateAvatarRequest true "Аватар в base64"
// @Success 200 {object} dto.PrivateUser
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /users/change-avatar [patch]
func (h *UserHandler) ChangeAvatar(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAvatarRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Удалить аккаунт
// @Description Проверяет пароль и удаляет пользователя вместе с закладками
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.DeleteUserRequest true "Пароль для подтверждения"
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /users/delete [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	var req dto.DeleteUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), identity.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Аккаунта больше нет, сессионные cookie ему тоже не нужны.
	h.cookies.clearSession(c)
	c.JSON(http.StatusOK, gin.H{"success": "User deleted successfully"})
}
