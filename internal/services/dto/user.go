package dto

// UpdateDetailsRequest - редактирование профиля.
// Пустые поля не меняются.
type UpdateDetailsRequest struct {
	Email       string `json:"email,omitempty" binding:"omitempty,email"`
	DisplayName string `json:"displayName,omitempty"`
}

// UpdatePasswordRequest - смена пароля с подтверждением текущего
type UpdatePasswordRequest struct {
	Password           string `json:"password" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=8"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

// UpdateAvatarRequest - замена аватара, base64 data URI
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// DeleteUserRequest - удаление аккаунта с подтверждением пароля
type DeleteUserRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
