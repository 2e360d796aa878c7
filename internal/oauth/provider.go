package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"screensynced_backend/internal/models"
)

// Profile - нормализованный профиль пользователя от внешнего провайдера
type Profile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// Client - OAuth2 клиент одного провайдера.
// UserInfoURL вынесен в поле, чтобы тесты могли подменить его на httptest сервер.
type Client struct {
	provider    models.OAuthProvider
	config      *oauth2.Config
	UserInfoURL string
}

// Provider возвращает имя провайдера
func (c *Client) Provider() models.OAuthProvider {
	return c.provider
}

// AuthCodeURL возвращает URL страницы согласия провайдера
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// FetchProfile обменивает authorization code на токен и запрашивает профиль
func (c *Client) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	httpClient := c.config.Client(ctx, token)
	resp, err := httpClient.Get(c.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info: %w", err)
	}

	return parseProfile(body)
}

// parseProfile разбирает ответ userinfo.
// Google отдает given_name/family_name и picture строкой,
// Facebook - first_name/last_name и picture вложенным объектом.
func parseProfile(data []byte) (*Profile, error) {
	var raw struct {
		ID         string          `json:"id"`
		Email      string          `json:"email"`
		GivenName  string          `json:"given_name"`
		FamilyName string          `json:"family_name"`
		FirstName  string          `json:"first_name"`
		LastName   string          `json:"last_name"`
		Picture    json.RawMessage `json:"picture"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed parsing user info: %w", err)
	}

	p := &Profile{
		ID:        raw.ID,
		Email:     raw.Email,
		FirstName: raw.GivenName,
		LastName:  raw.FamilyName,
	}
	if p.FirstName == "" {
		p.FirstName = raw.FirstName
	}
	if p.LastName == "" {
		p.LastName = raw.LastName
	}

	if len(raw.Picture) > 0 {
		var pictureURL string
		if err := json.Unmarshal(raw.Picture, &pictureURL); err == nil {
			p.Picture = pictureURL
		} else {
			var nested struct {
				Data struct {
					URL string `json:"url"`
				} `json:"data"`
			}
			if err := json.Unmarshal(raw.Picture, &nested); err == nil {
				p.Picture = nested.Data.URL
			}
		}
	}

	if p.ID == "" || p.Email == "" {
		return nil, fmt.Errorf("user info is missing id or email")
	}
	return p, nil
}

// GenerateState возвращает случайный state для защиты от CSRF в OAuth-флоу
func GenerateState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(b)
}
