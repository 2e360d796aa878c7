package handlers

import (
	"net/http"
	"net/url"

	"screensynced_backend/internal/config"
	"screensynced_backend/internal/logger"
	"screensynced_backend/internal/middleware"
	"screensynced_backend/internal/models"
	"screensynced_backend/internal/oauth"
	"screensynced_backend/internal/services"
	"screensynced_backend/internal/services/dto"
	"screensynced_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	oauthClients map[models.OAuthProvider]*oauth.Client
	clientURL    string
	cookies      cookieWriter
}

func NewAuthHandler(
	base *BaseHandler,
	authService services.AuthService,
	oauthClients map[models.OAuthProvider]*oauth.Client,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		oauthClients: oauthClients,
		clientURL:    cfg.Client.URL,
		cookies: cookieWriter{
			secure:     cfg.IsProduction(),
			accessTTL:  cfg.AccessTTL(),
			refreshTTL: cfg.RefreshTTL(),
		},
	}
}

// RegisterRoutes регистрирует все маршруты аутентификации.
// Logout требует живой access-токен, поэтому стоит за guard.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/login/google", h.GoogleLogin)
		auth.GET("/google/redirect", h.GoogleRedirect)
		auth.GET("/login/facebook", h.FacebookLogin)
		auth.GET("/facebook/redirect", h.FacebookRedirect)
		auth.GET("/refresh-token", h.RefreshToken)
		auth.GET("/logout", guard, h.Logout)
		auth.GET("/error", h.AuthError)
	}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя, выдает access/refresh токены в httpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.PrivateUser
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.cookies.setSession(c, result.AccessToken, result.RefreshToken)
	c.JSON(http.StatusCreated, result.User)
}

// Login godoc
// @Summary Вход по email и паролю
// @Description Проверяет учетные данные и выдает новую пару токенов в cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учетные данные"
// @Success 200 {object} dto.PrivateUser
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.cookies.setSession(c, result.AccessToken, result.RefreshToken)
	c.JSON(http.StatusOK, result.User)
}

// GoogleLogin godoc
// @Summary Начало OAuth-входа через Google
// @Description Ставит state-cookie и редиректит браузер на страницу согласия Google
// @Tags auth
// @Success 302
// @Router /auth/login/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	h.oauthRedirect(c, models.ProviderGoogle)
}

// GoogleRedirect godoc
// @Summary Callback OAuth Google
// @Description Обменивает code на профиль, создает/связывает аккаунт и редиректит на фронтенд
// @Tags auth
// @Success 302
// @Router /auth/google/redirect [get]
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	h.oauthCallback(c, models.ProviderGoogle)
}

// FacebookLogin godoc
// @Summary Начало OAuth-входа через Facebook
// @Tags auth
// @Success 302
// @Router /auth/login/facebook [get]
func (h *AuthHandler) FacebookLogin(c *gin.Context) {
	h.oauthRedirect(c, models.ProviderFacebook)
}

// FacebookRedirect godoc
// @Summary Callback OAuth Facebook
// @Tags auth
// @Success 302
// @Router /auth/facebook/redirect [get]
func (h *AuthHandler) FacebookRedirect(c *gin.Context) {
	h.oauthCallback(c, models.ProviderFacebook)
}

// RefreshToken godoc
// @Summary Обновление access-токена
// @Description Читает refresh-cookie, проверяет ее против сохраненного токена и выдает новый access-токен
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/refresh-token [get]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		h.HandleServiceError(c, apperrors.ErrInvalidRefreshToken)
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.cookies.setAccess(c, accessToken)
	c.JSON(http.StatusOK, gin.H{"success": "Token refreshed successfully"})
}

// Logout godoc
// @Summary Выход из аккаунта
// @Description Сбрасывает сохраненный refresh-токен и очищает сессионные cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), identity.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.cookies.clearSession(c)
	c.JSON(http.StatusOK, gin.H{"success": "Logout successful"})
}

// AuthError godoc
// @Summary Страница ошибки аутентификации
// @Description Редиректит браузер на фронтенд с текстом ошибки в query-параметре
// @Tags auth
// @Success 302
// @Router /auth/error [get]
func (h *AuthHandler) AuthError(c *gin.Context) {
	message := c.Query("message")
	if message == "" {
		message = "Authentication failed"
	}
	h.redirectWithError(c, message)
}

// oauthRedirect начинает OAuth-флоу: генерирует одноразовый state,
// сохраняет его в cookie и отправляет браузер на страницу согласия.
func (h *AuthHandler) oauthRedirect(c *gin.Context, provider models.OAuthProvider) {
	client, ok := h.oauthClients[provider]
	if !ok {
		h.redirectWithError(c, "Authentication provider is not configured")
		return
	}

	state := oauth.GenerateState()
	h.cookies.setState(c, state)
	c.Redirect(http.StatusFound, client.AuthCodeURL(state))
}

// oauthCallback завершает OAuth-флоу. Любая ошибка здесь уходит не JSON-ом,
// а редиректом на фронтенд: на этом шаге запрос делает браузер, не SPA.
func (h *AuthHandler) oauthCallback(c *gin.Context, provider models.OAuthProvider) {
	ctx := c.Request.Context()

	client, ok := h.oauthClients[provider]
	if !ok {
		h.redirectWithError(c, "Authentication provider is not configured")
		return
	}

	if errMsg := c.Query("error"); errMsg != "" {
		logger.CtxWarn(ctx, "OAuth provider returned error", "provider", provider, "error", errMsg)
		h.redirectWithError(c, "Authentication was cancelled")
		return
	}

	expectedState, ok := h.cookies.popState(c)
	if !ok || c.Query("state") != expectedState {
		logger.CtxWarn(ctx, "OAuth state mismatch", "provider", provider)
		h.redirectWithError(c, "Invalid authentication state")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, "Missing authorization code")
		return
	}

	profile, err := client.FetchProfile(ctx, code)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to fetch OAuth profile", err, "provider", provider)
		h.redirectWithError(c, "Failed to retrieve profile from provider")
		return
	}

	result, err := h.authService.OAuthLogin(ctx, profile, provider)
	if err != nil {
		logger.CtxWithError(ctx, "OAuth login failed", err, "provider", provider)
		h.redirectWithError(c, "Authentication failed")
		return
	}

	h.cookies.setSession(c, result.AccessToken, result.RefreshToken)
	c.Redirect(http.StatusFound, h.clientURL)
}

func (h *AuthHandler) redirectWithError(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, h.clientURL+"?error="+url.QueryEscape(message))
}
