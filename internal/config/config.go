// Package config loads settings from the environment, an optional .env file
// and command-line flags bound through viper.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys understood by Load.
const (
	KeyAPIBaseURL      = "API_BASE_URL"
	KeyAppPort         = "APP_PORT"
	KeyDatabaseDriver  = "DATABASE_DRIVER"
	KeyDatabaseDSN     = "DATABASE_DSN"
	KeyRabbitMQURL     = "RABBITMQ_URL"
	KeyUploadDir       = "UPLOAD_DIR"
	KeyUploadURLPrefix = "UPLOAD_URL_PREFIX"
	KeyLogLevel        = "LOG_LEVEL"
	KeyStorageDriver   = "STORAGE_DRIVER"
	KeyS3Region        = "S3_REGION"
	KeyS3Bucket        = "S3_BUCKET"
	KeyS3Prefix        = "S3_PREFIX"
	KeyS3PublicURL     = "S3_PUBLIC_URL"
)

// Config is the resolved configuration of both the console and the server.
type Config struct {
	APIBaseURL      string
	AppPort         string
	DatabaseDriver  string
	DatabaseDSN     string
	RabbitMQURL     string
	UploadDir       string
	UploadURLPrefix string
	LogLevel        slog.Level

	// StorageDriver is "local" or "s3".
	StorageDriver string
	S3Region      string
	S3Bucket      string
	S3Prefix      string
	S3PublicURL   string
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBaseURL, "http://localhost:5000")
	v.SetDefault(KeyAppPort, ":5000")
	v.SetDefault(KeyDatabaseDriver, "sqlite")
	v.SetDefault(KeyDatabaseDSN, "file:backoffice.db?cache=shared")
	v.SetDefault(KeyRabbitMQURL, "")
	v.SetDefault(KeyUploadDir, "uploads")
	v.SetDefault(KeyUploadURLPrefix, "/uploads")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyStorageDriver, "local")
	v.SetDefault(KeyS3Region, "us-east-1")
	v.SetDefault(KeyS3Prefix, "products")
}

// LoadDotEnv reads .env into the process environment if the file exists.
// Real environment variables win.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load resolves the configuration from v, which should already have defaults
// and any flag bindings applied.
func Load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()

	cfg := Config{
		APIBaseURL:      v.GetString(KeyAPIBaseURL),
		AppPort:         v.GetString(KeyAppPort),
		DatabaseDriver:  strings.ToLower(v.GetString(KeyDatabaseDriver)),
		DatabaseDSN:     v.GetString(KeyDatabaseDSN),
		RabbitMQURL:     v.GetString(KeyRabbitMQURL),
		UploadDir:       v.GetString(KeyUploadDir),
		UploadURLPrefix: v.GetString(KeyUploadURLPrefix),
		StorageDriver:   strings.ToLower(v.GetString(KeyStorageDriver)),
		S3Region:        v.GetString(KeyS3Region),
		S3Bucket:        v.GetString(KeyS3Bucket),
		S3Prefix:        v.GetString(KeyS3Prefix),
		S3PublicURL:     v.GetString(KeyS3PublicURL),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	switch cfg.DatabaseDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return Config{}, fmt.Errorf("unsupported %s %q (want sqlite, postgres or mysql)", KeyDatabaseDriver, cfg.DatabaseDriver)
	}
	switch cfg.StorageDriver {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" || cfg.S3PublicURL == "" {
			return Config{}, fmt.Errorf("%s=s3 needs %s and %s", KeyStorageDriver, KeyS3Bucket, KeyS3PublicURL)
		}
	default:
		return Config{}, fmt.Errorf("unsupported %s %q (want local or s3)", KeyStorageDriver, cfg.StorageDriver)
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyAPIBaseURL)
	}
	return cfg, nil
}

// NewLogger builds the structured logger used across the module.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
