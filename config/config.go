package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultCloudflareAPIBaseURL = "https://api.cloudflare.com/client/v4"

// Config holds every runtime setting of the API.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	LogLevel     string

	CloudflareAccountID   string
	CloudflareAPIToken    string
	CloudflareStreamToken string
	CloudflareAPIBaseURL  string
	ImagesDeliveryURL     string
	VideoRefreshInterval  time.Duration
	CORSAllowedOrigins    []string
	RunMigrations         bool

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// R2Enabled reports whether the original-upload archive is configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load reads configuration from the environment, loading a .env file first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CloudflareAPIBaseURL: strings.TrimRight(getEnv("CLOUDFLARE_API_BASE_URL", defaultCloudflareAPIBaseURL), "/"),
		R2AccountID:          os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:        os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:    os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:         os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:      os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	required := []struct {
		name string
		dst  *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"JWT_SECRET_KEY", &cfg.JWTSecretKey},
		{"CLOUDFLARE_ACCOUNT_ID", &cfg.CloudflareAccountID},
		{"CLOUDFLARE_API_TOKEN", &cfg.CloudflareAPIToken},
		{"CLOUDFLARE_IMAGES_DELIVERY_URL", &cfg.ImagesDeliveryURL},
	}
	for _, r := range required {
		v := os.Getenv(r.name)
		if v == "" {
			return nil, fmt.Errorf("%s environment variable is not set", r.name)
		}
		*r.dst = v
	}
	cfg.ImagesDeliveryURL = strings.TrimRight(cfg.ImagesDeliveryURL, "/")

	cfg.CloudflareStreamToken = getEnv("CLOUDFLARE_STREAM_TOKEN", cfg.CloudflareAPIToken)

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	interval, err := time.ParseDuration(getEnv("VIDEO_REFRESH_INTERVAL", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIDEO_REFRESH_INTERVAL environment variable: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("VIDEO_REFRESH_INTERVAL must be positive, got %s", interval)
	}
	cfg.VideoRefreshInterval = interval

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.RunMigrations, err = strconv.ParseBool(getEnv("RUN_MIGRATIONS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_MIGRATIONS environment variable: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
