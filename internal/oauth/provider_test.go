package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screensynced_backend/internal/config"
	"screensynced_backend/internal/models"
)

func TestParseProfile_Google(t *testing.T) {
	data := []byte(`{
		"id": "108923",
		"email": "user@gmail.com",
		"given_name": "Jane",
		"family_name": "Doe",
		"picture": "https://lh3.googleusercontent.com/photo.jpg"
	}`)

	p, err := parseProfile(data)
	require.NoError(t, err)
	assert.Equal(t, "108923", p.ID)
	assert.Equal(t, "user@gmail.com", p.Email)
	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
	assert.Equal(t, "https://lh3.googleusercontent.com/photo.jpg", p.Picture)
}

func TestParseProfile_Facebook(t *testing.T) {
	data := []byte(`{
		"id": "77001",
		"email": "user@example.com",
		"first_name": "John",
		"last_name": "Smith",
		"picture": {"data": {"url": "https://graph.facebook.com/photo.jpg"}}
	}`)

	p, err := parseProfile(data)
	require.NoError(t, err)
	assert.Equal(t, "77001", p.ID)
	assert.Equal(t, "John", p.FirstName)
	assert.Equal(t, "Smith", p.LastName)
	assert.Equal(t, "https://graph.facebook.com/photo.jpg", p.Picture)
}

func TestParseProfile_MissingRequiredFields(t *testing.T) {
	_, err := parseProfile([]byte(`{"id": "1"}`))
	assert.Error(t, err)

	_, err = parseProfile([]byte(`{"email": "x@y.z"}`))
	assert.Error(t, err)

	_, err = parseProfile([]byte(`not json`))
	assert.Error(t, err)
}

func TestAuthCodeURL(t *testing.T) {
	client := NewGoogleClient(config.OAuthProviderConfig{
		ClientID:    "client-id",
		CallbackURL: "http://localhost:3333/api/auth/google/redirect",
	})

	assert.Equal(t, models.ProviderGoogle, client.Provider())

	url := client.AuthCodeURL("my-state")
	assert.Contains(t, url, "state=my-state")
	assert.Contains(t, url, "client_id=client-id")
}

func TestGenerateState(t *testing.T) {
	s1 := GenerateState()
	s2 := GenerateState()

	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
}
