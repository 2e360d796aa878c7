package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"screensynced_backend/pkg/apperrors"
)

// TokenKind - тип выпускаемого токена
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Claims - полезная нагрузка токена: sub = ID пользователя, email - логин.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService подписывает и проверяет access и refresh токены.
// У каждого типа токена свой секрет и свой срок жизни.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService создает TokenService.
// accessTTL/refreshTTL <= 0 заменяются значениями по умолчанию (15m / 7d).
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue выпускает подписанный токен заданного типа
func (s *TokenService) Issue(userID uint, email string, kind TokenKind) (string, error) {
	secret, ttl := s.secretAndTTL(kind)

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена заданного типа.
// Неверная подпись (в т.ч. подпись другим секретом), истечение срока
// и любой мусор на входе дают одну и ту же ошибку ErrInvalidToken.
func (s *TokenService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret, _ := s.secretAndTTL(kind)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// UserID извлекает ID пользователя из subject
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}
	return uint(id), nil
}

func (s *TokenService) secretAndTTL(kind TokenKind) ([]byte, time.Duration) {
	if kind == TokenRefresh {
		return s.refreshSecret, s.refreshTTL
	}
	return s.accessSecret, s.accessTTL
}
