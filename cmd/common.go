package cmd

import (
	"context"
	"fmt"

	"pathsync/core/backend"
	"pathsync/core/config"
	"pathsync/core/logger"
	"pathsync/core/path"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scopeFlags are shared by the commands that walk a folder.
type scopeFlags struct {
	scope string
	depth string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.scope, "scope", "", "Folder to walk, slash separated (default from SYNC_SCOPE)")
	cmd.Flags().StringVar(&f.depth, "depth", "", "Depth: simple or recursive (default from SYNC_DEPTH)")
}

// resolve merges the flags over the configured defaults.
func (f *scopeFlags) resolve(cmd *cobra.Command, cfg *config.Config) (path.Depth, path.FolderPath, error) {
	scope, depth := cfg.Sync.Scope, cfg.Sync.Depth
	if cmd.Flags().Changed("scope") {
		scope = f.scope
	}
	if cmd.Flags().Changed("depth") {
		depth = f.depth
	}

	d, err := path.ParseDepth(depth)
	if err != nil {
		return 0, path.FolderPath{}, err
	}
	return d, path.ParseFolderPath(scope), nil
}

// setup loads the configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// openSides builds the local and remote backends named in the configuration.
func openSides(ctx context.Context, cfg *config.Config) (local, remote backend.Backend[string], err error) {
	local, err = config.OpenBackend(ctx, cfg.Sync.Local, cfg, "local")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open local backend: %w", err)
	}
	remote, err = config.OpenBackend(ctx, cfg.Sync.Remote, cfg, "remote")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open remote backend: %w", err)
	}
	return local, remote, nil
}
