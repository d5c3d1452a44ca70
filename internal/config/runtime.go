package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultAccessTTL      = "15m"
	defaultRefreshTTL     = "240h"
	defaultCookieSecure   = "false"
	defaultCookieSameSite = "Lax"
	defaultCookiePath     = "/"
	defaultAccessSecret   = "change-me-access-secret"
	defaultRefreshSecret  = "change-me-refresh-secret"
)

type RuntimeConfig struct {
	AppEnv         string
	Port           string
	DatabaseURL    string
	AccessSecret   string
	RefreshSecret  string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	CookieSecure   bool
	CookieSameSite string
	CookiePath     string

	S3Region       string
	S3Bucket       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	MediaPublicURL string
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", "8080"))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "clipstream.db"))
	cfg.AccessSecret = strings.TrimSpace(getEnv("ACCESS_TOKEN_SECRET", defaultAccessSecret))
	cfg.RefreshSecret = strings.TrimSpace(getEnv("REFRESH_TOKEN_SECRET", defaultRefreshSecret))

	var err error
	cfg.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookieSameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))
	cfg.CookiePath = strings.TrimSpace(getEnv("COOKIE_PATH", defaultCookiePath))

	cfg.S3Region = strings.TrimSpace(getEnv("S3_REGION", "us-east-1"))
	cfg.S3Bucket = strings.TrimSpace(getEnv("S3_BUCKET", "clipstream-media"))
	cfg.S3Endpoint = strings.TrimSpace(os.Getenv("S3_ENDPOINT"))
	cfg.S3AccessKey = strings.TrimSpace(os.Getenv("S3_ACCESS_KEY"))
	cfg.S3SecretKey = strings.TrimSpace(os.Getenv("S3_SECRET_KEY"))
	cfg.MediaPublicURL = strings.TrimSpace(os.Getenv("MEDIA_PUBLIC_URL"))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("auth cookie config: secure=%t, sameSite=%s, path=%s", cfg.CookieSecure, cfg.CookieSameSite, cfg.CookiePath)

	return cfg, nil
}

func validateConfig(cfg *RuntimeConfig) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if cfg.CookiePath == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}
	sameSite := strings.ToLower(strings.TrimSpace(cfg.CookieSameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.AccessSecret, defaultAccessSecret) {
			return fmt.Errorf("in prod/release ACCESS_TOKEN_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshSecret, defaultRefreshSecret) {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
