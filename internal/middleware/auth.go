package middleware

import (
	"github.com/gin-gonic/gin"

	"screensynced_backend/internal/auth"
	"screensynced_backend/internal/logger"
	"screensynced_backend/internal/repositories"
	"screensynced_backend/internal/services/dto"
	"screensynced_backend/pkg/apperrors"
)

// Имена cookie с токенами сессии
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

const identityKey = "identity"

// Identity - личность вызывающего, установленная guard-ом.
// Хендлеры читают ее только через CurrentIdentity/CurrentUserID.
type Identity struct {
	UserID uint
	User   dto.PrivateUser
}

// AuthRequired - guard защищенных маршрутов.
// Access-токен принимается ТОЛЬКО из cookie, не из заголовка.
// Отсутствующий, невалидный или просроченный токен обрывает запрос с 401
// до вызова хендлера.
func AuthRequired(tokens *auth.TokenService, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenStr == "" {
			abortUnauthorized(c, "Authentication cookie missing")
			return
		}

		claims, err := tokens.Verify(tokenStr, auth.TokenAccess)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		// Токен мог пережить удаление аккаунта
		user, err := userRepo.FindByID(userID)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(identityKey, Identity{
			UserID: user.ID,
			User:   dto.SanitizeUser(user),
		})

		ctx := logger.WithUserID(c.Request.Context(), claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentIdentity извлекает личность вызывающего из контекста запроса
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}

// CurrentUserID извлекает ID вызывающего из контекста запроса
func CurrentUserID(c *gin.Context) (uint, bool) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return 0, false
	}
	return identity.UserID, true
}

func abortUnauthorized(c *gin.Context, message string) {
	apperrors.HandleError(c, apperrors.NewUnauthorizedError(message))
	c.Abort()
}
