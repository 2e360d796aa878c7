package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screensynced_backend/internal/auth"
	"screensynced_backend/internal/config"
	"screensynced_backend/internal/middleware"
	"screensynced_backend/internal/models"
	"screensynced_backend/internal/oauth"
	"screensynced_backend/internal/repositories"
	"screensynced_backend/internal/services"
	"screensynced_backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memUserRepo - in-memory UserRepository для HTTP-тестов.
type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *memUserRepo) FindByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) FindByRefreshToken(token string) (*models.User, error) {
	if token == "" {
		return nil, repositories.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.RefreshToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) Create(user *models.User) error {
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) UpdateRefreshToken(userID uint, token string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *memUserRepo) UpdateAvatar(userID uint, avatarURL string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Avatar = avatarURL
	return nil
}

func (r *memUserRepo) Delete(userID uint) error {
	delete(r.users, userID)
	return nil
}

// memFileHost - файловый хостинг-заглушка.
type memFileHost struct {
	fail bool
}

func (h *memFileHost) Upload(ctx context.Context, base64Data, owner string) (string, error) {
	if h.fail {
		return "", errors.New("upload rejected")
	}
	return "https://files.example.com/avatars/" + owner + ".png", nil
}

func (h *memFileHost) Remove(ctx context.Context, publicID string) error {
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.AccessTTLMinutes = 15
	cfg.JWT.RefreshTTLDays = 7
	cfg.Client.URL = "http://localhost:5173"
	return cfg
}

func newTestRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()

	cfg := testConfig()
	repo := newMemUserRepo()
	fileHost := &memFileHost{}
	tokens := auth.NewTokenService("test-access", "test-refresh", cfg.AccessTTL(), cfg.RefreshTTL())

	authService := services.NewAuthService(repo, tokens, fileHost)
	userService := services.NewUserService(repo, fileHost)

	base := NewBaseHandler(validator.New())
	appHandlers := &AppHandlers{
		AuthHandler: NewAuthHandler(base, authService, map[models.OAuthProvider]*oauth.Client{}, cfg),
		UserHandler: NewUserHandler(base, userService, cfg),
	}

	router := gin.New()
	api := router.Group("/api")
	guard := middleware.AuthRequired(tokens, repo)
	appHandlers.AuthHandler.RegisterRoutes(api, guard)
	appHandlers.UserHandler.RegisterRoutes(api, guard)

	return router, repo
}

func doJSON(router *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookies(t *testing.T, w *httptest.ResponseRecorder) (access, refresh *http.Cookie) {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		switch cookie.Name {
		case middleware.AccessTokenCookie:
			access = cookie
		case middleware.RefreshTokenCookie:
			refresh = cookie
		}
	}
	require.NotNil(t, access, "access cookie not set")
	require.NotNil(t, refresh, "refresh cookie not set")
	return access, refresh
}

func registerBody() gin.H {
	return gin.H{
		"email":       "user@example.com",
		"password":    "password123",
		"displayName": "Test User",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	access, refresh := sessionCookies(t, w)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.False(t, access.Secure) // не production

	// Тело ответа - санированный пользователь, без токенов и хеша
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user@example.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "refreshToken")
}

func TestRegisterEndpoint_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"email":       "not-an-email",
		"password":    "password123",
		"displayName": "X",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"email":       "user@example.com",
		"password":    "short",
		"displayName": "X",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)

	w := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sessionCookies(t, w)

	w = doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefreshTokenEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	_, refresh := sessionCookies(t, w)

	w = doJSON(router, http.MethodGet, "/api/auth/refresh-token", nil, []*http.Cookie{refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Token refreshed successfully")

	var newAccess *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AccessTokenCookie {
			newAccess = cookie
		}
	}
	require.NotNil(t, newAccess)
	assert.NotEmpty(t, newAccess.Value)
}

func TestRefreshTokenEndpoint_NoCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/auth/refresh-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenEndpoint_RevokedToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	access, refresh := sessionCookies(t, w)

	// После logout прежний refresh-токен мертв
	w = doJSON(router, http.MethodGet, "/api/auth/logout", nil, []*http.Cookie{access})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/auth/refresh-token", nil, []*http.Cookie{refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	router, repo := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	access, _ := sessionCookies(t, w)

	w = doJSON(router, http.MethodGet, "/api/auth/logout", nil, []*http.Cookie{access})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logout successful")

	// Сессионные cookie сброшены
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AccessTokenCookie || cookie.Name == middleware.RefreshTokenCookie {
			assert.Less(t, cookie.MaxAge, 0, cookie.Name)
		}
	}

	stored, err := repo.FindByID(1)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)
}

func TestLogoutEndpoint_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/auth/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthErrorEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/auth/error?message=Something+failed", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:5173?error=Something+failed", w.Header().Get("Location"))
}

func TestOAuthLoginEndpoint_UnconfiguredProvider(t *testing.T) {
	router, _ := newTestRouter(t)

	// Провайдеры не сконфигурированы - браузер уходит на фронтенд с ошибкой
	w := doJSON(router, http.MethodGet, "/api/auth/login/google", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")
}

func TestCurrentUserEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	access, _ := sessionCookies(t, w)

	w = doJSON(router, http.MethodGet, "/api/users/current-user", nil, []*http.Cookie{access})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "user@example.com")

	w = doJSON(router, http.MethodGet, "/api/users/current-user", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestErrorResponseShape(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "User not found", body.Error.Message)
}

func TestFullSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	// register -> current-user -> logout -> refresh отвергнут
	w := doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"email":       fmt.Sprintf("user%d@example.com", 1),
		"password":    "password123",
		"displayName": "Lifecycle",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	access, refresh := sessionCookies(t, w)

	w = doJSON(router, http.MethodGet, "/api/users/current-user", nil, []*http.Cookie{access})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/auth/logout", nil, []*http.Cookie{access})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/auth/refresh-token", nil, []*http.Cookie{refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
