package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pathsync/core/config"
	"pathsync/core/loader"
	"pathsync/core/logger"
	"pathsync/core/middleware/auth"
	"pathsync/core/middleware/requestid"
	"pathsync/feature/store"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd exposes the local backend over HTTP so other instances can use it as remote.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local backend over HTTP",
	Long: `Starts the HTTP server exposing the local backend under /store.
Another pathsync instance reaches it with SYNC_REMOTE=http and SYNC_REMOTE_URL.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	local, err := config.OpenBackend(ctx, cfg.Sync.Local, cfg, "local")
	if err != nil {
		return fmt.Errorf("failed to open local backend: %w", err)
	}

	app := newApp(logg, cfg.Server.ApiKey)

	mgr := loader.NewManager(logg)
	mgr.Register(store.NewFeature(local, logg))
	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server",
			zap.String("address", cfg.Server.Address()),
			zap.String("backend", cfg.Sync.Local),
		)
		errCh <- app.Listen(cfg.Server.Address())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sig:
	}

	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout())
}

// newApp builds the fiber app with the request id, logging and auth middleware.
func newApp(logg *zap.Logger, apiKey string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	// Request id first so every later log line carries it
	app.Use(requestid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRequestID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(auth.New(auth.Config{ApiKey: apiKey}))

	return app
}
