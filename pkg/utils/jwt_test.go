package utils

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateJWT("sess-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims["sid"])
	assert.Equal(t, "ana@example.com", claims["email"])
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateJWT("sess-1", "ana@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT("sess-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	SetSecret("other-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)

	SetSecret("test-secret")
}

func TestExtractClaims(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT("sess-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	t.Run("from the authorization header", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		claims, err := ExtractClaims(r)
		require.NoError(t, err)
		assert.Equal(t, "sess-1", claims.SessionID)
	})

	t.Run("from the access token cookie", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

		claims, err := ExtractClaims(r)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", claims.Email)
	})

	t.Run("missing token is an error", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		_, err := ExtractClaims(r)
		assert.Error(t, err)
	})
}
