package middlewares

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuth(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "test-secret")

	app := fiber.New()
	app.Delete("/api/reset-all", AdminAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// no signature
	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/reset-all", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// wrong signature
	req := httptest.NewRequest("DELETE", "/api/reset-all", nil)
	req.Header.Set("X-Admin-Signature", "deadbeef")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// valid signature over the request path
	h := hmac.New(sha256.New, []byte("test-secret"))
	h.Write([]byte("/api/reset-all"))
	req = httptest.NewRequest("DELETE", "/api/reset-all", nil)
	req.Header.Set("X-Admin-Signature", hex.EncodeToString(h.Sum(nil)))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
