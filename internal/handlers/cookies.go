package handlers

import (
	"net/http"
	"time"

	"screensynced_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// oauthStateCookie хранит anti-CSRF state между редиректом на провайдера
// и возвратом на callback.
const oauthStateCookie = "oauth_state"

const stateCookieTTL = 10 * time.Minute

// cookieWriter инкапсулирует политику выдачи сессионных cookie.
// В production cookie ставятся Secure + SameSite=None (фронтенд живет
// на другом origin), в dev — SameSite=Lax без Secure, чтобы работать
// по plain http. HttpOnly и путь "/" — всегда.
type cookieWriter struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func (w cookieWriter) sameSite() http.SameSite {
	if w.secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (w cookieWriter) set(c *gin.Context, name, value string, maxAge time.Duration) {
	c.SetSameSite(w.sameSite())
	c.SetCookie(name, value, int(maxAge.Seconds()), "/", "", w.secure, true)
}

func (w cookieWriter) clear(c *gin.Context, name string) {
	c.SetSameSite(w.sameSite())
	c.SetCookie(name, "", -1, "/", "", w.secure, true)
}

// setSession ставит обе сессионные cookie.
func (w cookieWriter) setSession(c *gin.Context, accessToken, refreshToken string) {
	w.setAccess(c, accessToken)
	w.set(c, middleware.RefreshTokenCookie, refreshToken, w.refreshTTL)
}

// setAccess обновляет только access-cookie (используется при refresh).
func (w cookieWriter) setAccess(c *gin.Context, accessToken string) {
	w.set(c, middleware.AccessTokenCookie, accessToken, w.accessTTL)
}

// clearSession сбрасывает обе сессионные cookie.
func (w cookieWriter) clearSession(c *gin.Context) {
	w.clear(c, middleware.AccessTokenCookie)
	w.clear(c, middleware.RefreshTokenCookie)
}

// setState ставит короткоживущую state-cookie перед редиректом на провайдера.
func (w cookieWriter) setState(c *gin.Context, state string) {
	w.set(c, oauthStateCookie, state, stateCookieTTL)
}

// popState читает state-cookie и сразу сбрасывает ее: state одноразовый.
func (w cookieWriter) popState(c *gin.Context) (string, bool) {
	state, err := c.Cookie(oauthStateCookie)
	w.clear(c, oauthStateCookie)
	if err != nil || state == "" {
		return "", false
	}
	return state, true
}
