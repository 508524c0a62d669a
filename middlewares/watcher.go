package middlewares

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"spinvault/helpers"

	"github.com/gofiber/fiber/v2"
)

// WatcherAuth authenticates the blockchain watcher callbacks: the watcher
// signs the raw request body with the shared key.
func WatcherAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Watcher-Signature")
		if signature == "" {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "WATCHER_SIGNATURE_REQUIRED")
		}

		key := os.Getenv("CHAIN_WATCHER_KEY")

		h := hmac.New(sha256.New, []byte(key))
		h.Write(c.Body())
		expected := hex.EncodeToString(h.Sum(nil))

		if !hmac.Equal([]byte(signature), []byte(expected)) {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_WATCHER_SIGNATURE")
		}

		return c.Next()
	}
}
