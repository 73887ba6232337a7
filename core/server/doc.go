// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the API key protecting the store
// endpoints and the graceful shutdown timeout used by "pathsync serve".
package server
