// Package config provides configuration management for pathsync.
//
// Values come from environment variables (optionally loaded from a .env file) with
// defaults declared in 'default' struct tags. Nested keys map to upper-case
// underscore names: sync.remote_url is read from SYNC_REMOTE_URL.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and shutdown timeout for "pathsync serve"
//   - Database: driver (mysql, sqlite), connection details and table name
//   - Storage: S3/MinIO credentials, bucket and key prefix
//   - Log: logging level and format
//   - Sync: backend kinds of both sides, remote URL, default scope and depth
//
// OpenBackend turns a backend kind into a ready backend.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	local, err := config.OpenBackend(ctx, cfg.Sync.Local, cfg, "local")
package config
