package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration for the teacher console. It is built
// once in main and passed into every constructor; nothing reads the
// environment after startup.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	BackendBaseURL string
	StaticBaseURL  string
	FrontendOrigin string
	RedisURL       string
	ListCacheTTL   time.Duration
	MaxUploadMB    int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file. The backend and frontend bases default to the local development
// setup.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BRAILLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "BrailleBridge Teacher Console")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("frontend.origin", "http://localhost:5173")
	v.SetDefault("list.cache_ttl", "30s")
	v.SetDefault("max_upload_mb", 10)

	ttlString := v.GetString("list.cache_ttl")
	if ttlString == "" {
		ttlString = "30s"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid list cache ttl: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		BackendBaseURL: v.GetString("backend.url"),
		StaticBaseURL:  v.GetString("static.url"),
		FrontendOrigin: v.GetString("frontend.origin"),
		RedisURL:       v.GetString("redis.url"),
		ListCacheTTL:   ttl,
		MaxUploadMB:    v.GetInt("max_upload_mb"),
	}

	if cfg.BackendBaseURL == "" {
		return Config{}, fmt.Errorf("backend base url must be provided")
	}

	if cfg.StaticBaseURL == "" {
		cfg.StaticBaseURL = cfg.BackendBaseURL
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}
