package services

import (
	"context"
	"net/http"

	"screensynced_backend/internal/auth"
	"screensynced_backend/internal/logger"
	"screensynced_backend/internal/models"
	"screensynced_backend/internal/oauth"
	"screensynced_backend/internal/repositories"
	"screensynced_backend/internal/services/dto"
	"screensynced_backend/internal/storage"
	"screensynced_backend/pkg/apperrors"
)

// AuthService - оркестратор сессий: регистрация, вход, OAuth,
// обновление access-токена и выход.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error)
	OAuthLogin(ctx context.Context, profile *oauth.Profile, provider models.OAuthProvider) (*dto.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID uint) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenService
	fileHost storage.FileHost
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenService,
	fileHost storage.FileHost,
) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		fileHost: fileHost,
	}
}

// Register - регистрация нового пользователя.
// Ошибка загрузки аватара проваливает всю регистрацию:
// молчаливо терять переданный файл нельзя.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var avatarURL string
	if req.Avatar != "" {
		avatarURL, err = s.fileHost.Upload(ctx, req.Avatar, req.Email)
		if err != nil {
			logger.CtxWithError(ctx, "avatar upload failed during registration", err, "email", req.Email)
			return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError,
				"storage", "An error occurred while registering user", http.StatusInternalServerError)
		}
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		DisplayName:  req.DisplayName,
		Avatar:       avatarURL,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueSession(user)
}

// Login - аутентификация по email и паролю
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Для OAuth-пользователей без пароля хеш пустой - проверка провалится
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// OAuthLogin - вход через внешнего провайдера.
// Находит пользователя по email профиля; отсутствующего создает без пароля,
// существующему привязывает ID провайдера, если тот еще не привязан.
func (s *AuthServiceImpl) OAuthLogin(ctx context.Context, profile *oauth.Profile, provider models.OAuthProvider) (*dto.AuthResult, error) {
	if !provider.Valid() {
		return nil, apperrors.NewBadRequestError("Unknown OAuth provider")
	}

	user, err := s.userRepo.FindByEmail(profile.Email)
	switch {
	case err == nil:
		if _, linked := user.ProviderID(provider); !linked {
			user.SetProviderID(provider, profile.ID)
			if err := s.userRepo.Update(user); err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
	case apperrors.Is(err, repositories.ErrUserNotFound):
		user = &models.User{
			Email:       profile.Email,
			DisplayName: profile.FirstName + profile.LastName,
			Avatar:      profile.Picture,
		}
		user.SetProviderID(provider, profile.ID)
		if err := s.userRepo.Create(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	return s.issueSession(user)
}

// Refresh - выпуск нового access-токена по refresh-токену.
// Сначала ищем владельца токена в хранилище: это проверка отзыва,
// и она идет ДО проверки подписи - структурно валидный, но
// перезаписанный токен должен быть отвергнут.
// Refresh-токен при этом не ротируется.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	user, err := s.userRepo.FindByRefreshToken(refreshToken)
	if err != nil {
		// Неважно, какая ошибка (не найден или другая) - токен невалиден
		return "", apperrors.ErrInvalidRefreshToken
	}

	if _, err := s.tokens.Verify(refreshToken, auth.TokenRefresh); err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.tokens.Issue(user.ID, user.Email, auth.TokenAccess)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	return accessToken, nil
}

// Logout - отзыв активной сессии: refresh-токен очищается.
// Операция идемпотентна, повторный выход не ошибка.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint) error {
	err := s.userRepo.UpdateRefreshToken(userID, "")
	if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

// issueSession выпускает пару токенов и сохраняет refresh-токен,
// перезаписывая предыдущий - это точка отзыва старых сессий.
func (s *AuthServiceImpl) issueSession(user *models.User) (*dto.AuthResult, error) {
	accessToken, err := s.tokens.Issue(user.ID, user.Email, auth.TokenAccess)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.tokens.Issue(user.ID, user.Email, auth.TokenRefresh)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResult{
		User:         dto.SanitizeUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
