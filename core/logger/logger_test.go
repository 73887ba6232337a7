package logger_test

import (
	"net/http/httptest"
	"testing"

	"pathsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logger.Config
		debug   bool
		wantErr bool
	}{
		{"DebugConsole", logger.Config{Level: "debug", Format: "console"}, true, false},
		{"InfoJSON", logger.Config{Level: "info", Format: "json"}, false, false},
		{"Warn", logger.Config{Level: "warn"}, false, false},
		{"EmptyDefaultsToInfo", logger.Config{}, false, false},
		{"InvalidLevel", logger.Config{Level: "chatty"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, l.Core().Enabled(zap.DebugLevel))
		})
	}
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/with", func(c *fiber.Ctx) error {
		c.Locals(logger.RequestIDKey, "abc-123")
		logger.WithRequestID(base, c).Info("handled")
		return nil
	})
	app.Get("/without", func(c *fiber.Ctx) error {
		logger.WithRequestID(base, c).Info("handled")
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/with", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/without", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}
