package middlewares

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"spinvault/helpers"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth guards destructive admin endpoints. The caller signs the request
// path with the shared admin secret.
func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Admin-Signature")
		if signature == "" {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "ADMIN_SIGNATURE_REQUIRED")
		}

		secret := os.Getenv("ADMIN_SECRET")

		h := hmac.New(sha256.New, []byte(secret))
		h.Write([]byte(c.Path()))
		expected := hex.EncodeToString(h.Sum(nil))

		if !hmac.Equal([]byte(signature), []byte(expected)) {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SIGNATURE")
		}

		return c.Next()
	}
}
