package config

import (
	"reflect"
	"strings"

	"pathsync/core/database"
	"pathsync/core/logger"
	"pathsync/core/server"
	"pathsync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage backend.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the SQL backend.
	Database database.Config `mapstructure:"database"`
	// Sync selects the backends and the default pass.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds the synchronization settings.
type SyncConfig struct {
	// Local is the backend kind of the local side.
	Local string `mapstructure:"local" default:"database"`
	// Remote is the backend kind of the remote side.
	Remote string `mapstructure:"remote" default:"http"`
	// RemoteURL is the base URL of a remote "pathsync serve" instance.
	RemoteURL string `mapstructure:"remote_url" default:"http://localhost:8080"`
	// RemoteAPIKey authenticates against RemoteURL.
	RemoteAPIKey string `mapstructure:"remote_api_key" default:""`
	// Concurrency is the number of paths reconciled in parallel.
	Concurrency int `mapstructure:"concurrency" default:"1"`
	// Scope is the default folder, slash separated.
	Scope string `mapstructure:"scope" default:""`
	// Depth is the default depth (simple, recursive).
	Depth string `mapstructure:"depth" default:"recursive"`
	// Compress stores items zstd compressed in the database and storage backends.
	Compress bool `mapstructure:"compress" default:"false"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SYNC_REMOTE_URL -> sync.remote_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every 'mapstructure' key in Viper with
// the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
