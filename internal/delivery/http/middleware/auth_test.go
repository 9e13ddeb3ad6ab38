package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/delivery/http/middleware"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newAuthApp(t *testing.T, auth *middleware.Auth, required bool) *fiber.App {
	t.Helper()
	app := fiber.New()
	guard := auth.Optional()
	if required {
		guard = auth.Required()
	}
	app.Get("/", guard, func(c *fiber.Ctx) error {
		actor := middleware.ActorFrom(c)
		if actor == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(actor.UserID.String() + ":" + actor.Role)
	})
	return app
}

func TestAuth(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	auth := middleware.NewAuth(&key.PublicKey, zap.NewNop())
	userID := uuid.New()

	valid := signToken(t, key, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	t.Run("valid token yields actor", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+valid)

		resp, err := newAuthApp(t, auth, true).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("required rejects missing header", func(t *testing.T) {
		resp, err := newAuthApp(t, auth, true).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("optional allows anonymous", func(t *testing.T) {
		resp, err := newAuthApp(t, auth, false).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("expired token is rejected even when optional", func(t *testing.T) {
		expired := signToken(t, key, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+expired)

		resp, err := newAuthApp(t, auth, false).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed by another key is rejected", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, other, jwt.MapClaims{"sub": userID.String()}))

		resp, err := newAuthApp(t, auth, true).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non uuid subject is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, key, jwt.MapClaims{"sub": "42"}))

		resp, err := newAuthApp(t, auth, true).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("HS256 token is rejected", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID.String()}).
			SignedString([]byte("secret"))
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := newAuthApp(t, auth, true).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoadPublicKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "jwt.pub")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	loaded, err := middleware.LoadPublicKey(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey.N, loaded.N)

	empty, err := middleware.LoadPublicKey("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = middleware.LoadPublicKey(filepath.Join(t.TempDir(), "missing.pub"))
	assert.Error(t, err)
}
