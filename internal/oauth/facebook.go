package oauth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"screensynced_backend/internal/config"
	"screensynced_backend/internal/models"
)

const facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,email,first_name,last_name,picture.type(large)"

// NewFacebookClient создает OAuth2 клиент для Facebook
func NewFacebookClient(cfg config.OAuthProviderConfig) *Client {
	return &Client{
		provider: models.ProviderFacebook,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
		UserInfoURL: facebookUserInfoURL,
	}
}
