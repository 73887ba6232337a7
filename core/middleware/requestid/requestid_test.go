package requestid_test

import (
	"net/http/httptest"
	"testing"

	"pathsync/core/logger"
	"pathsync/core/middleware/requestid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		id, _ := c.Locals(logger.RequestIDKey).(string)
		return c.SendString(id)
	})
	return app
}

func TestNew(t *testing.T) {
	t.Run("Generates", func(t *testing.T) {
		resp, err := newApp().Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		id := resp.Header.Get(requestid.Header)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("ReusesIncoming", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(requestid.Header, "upstream-id")

		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, "upstream-id", resp.Header.Get(requestid.Header))
	})
}
