package oauth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"screensynced_backend/internal/config"
	"screensynced_backend/internal/models"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// NewGoogleClient создает OAuth2 клиент для Google
func NewGoogleClient(cfg config.OAuthProviderConfig) *Client {
	return &Client{
		provider: models.ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		UserInfoURL: googleUserInfoURL,
	}
}
