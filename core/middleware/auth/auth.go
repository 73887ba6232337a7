// Package auth protects routes with a shared API key.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// Header is the primary API key header. "Authorization: Bearer <key>" is accepted too.
const Header = "X-API-Key"

// Config holds the middleware settings.
type Config struct {
	// ApiKey is the expected key. Empty disables authentication.
	ApiKey string
}

// New returns a middleware rejecting requests without the configured key.
func New(cfg Config) fiber.Handler {
	if cfg.ApiKey == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	expected := []byte(cfg.ApiKey)
	validate := func(_ *fiber.Ctx, key string) (bool, error) {
		if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
			return false, keyauth.ErrMissingOrMalformedAPIKey
		}
		return true, nil
	}
	unauthorized := func(c *fiber.Ctx, _ error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	byHeader := keyauth.New(keyauth.Config{
		KeyLookup:    "header:" + Header,
		Validator:    validate,
		ErrorHandler: unauthorized,
	})
	byBearer := keyauth.New(keyauth.Config{
		KeyLookup:    "header:" + fiber.HeaderAuthorization,
		AuthScheme:   "Bearer",
		Validator:    validate,
		ErrorHandler: unauthorized,
	})

	return func(c *fiber.Ctx) error {
		if c.Get(Header) == "" && c.Get(fiber.HeaderAuthorization) != "" {
			return byBearer(c)
		}
		return byHeader(c)
	}
}
