package auth_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"pathsync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		headers map[string]string
		want    int
	}{
		{"Disabled", "", nil, fiber.StatusOK},
		{"Missing", "secret", nil, fiber.StatusUnauthorized},
		{"Wrong", "secret", map[string]string{auth.Header: "nope"}, fiber.StatusUnauthorized},
		{"Header", "secret", map[string]string{auth.Header: "secret"}, fiber.StatusOK},
		{"Bearer", "secret", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
		{"BasicIgnored", "secret", map[string]string{"Authorization": "Basic secret"}, fiber.StatusUnauthorized},
		{"WrongBearer", "secret", map[string]string{"Authorization": "Bearer nope"}, fiber.StatusUnauthorized},
		{"HeaderWinsOverBearer", "secret", map[string]string{auth.Header: "nope", "Authorization": "Bearer secret"}, fiber.StatusUnauthorized},
		{"PrefixOfKey", "secret", map[string]string{auth.Header: "secre"}, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(auth.New(auth.Config{ApiKey: tt.apiKey}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			if tt.want == fiber.StatusUnauthorized {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"error":"unauthorized"}`, string(body))
			}
		})
	}
}
