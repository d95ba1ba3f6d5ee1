package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Name     string
	User     string
	Password string
	Host     string
	Port     string
}

func (d Database) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

type Auth struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

type Config struct {
	Addr      string
	MediaRoot string
	Database  Database
	Auth      Auth
	Cookies   Cookies
}

// Load reads the process configuration once at startup. A missing required
// variable is fatal to the caller; nothing reads the environment after this.
func Load() (Config, error) {
	// A .env file is a convenience for local runs only.
	_ = godotenv.Load()

	cfg := Config{
		Addr:      getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		MediaRoot: getEnv("MEDIA_ROOT", "media"),
		Database: Database{
			Name:     os.Getenv("POSTGRES_DB"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
		},
		Cookies: Cookies{
			Domain:   os.Getenv("COOKIE_DOMAIN"),
			Secure:   getEnv("COOKIE_SECURE", "true") == "true",
			SameSite: parseSameSite(getEnv("COOKIE_SAMESITE", "lax")),
		},
	}

	for name, value := range map[string]string{
		"POSTGRES_DB":       cfg.Database.Name,
		"POSTGRES_USER":     cfg.Database.User,
		"POSTGRES_PASSWORD": cfg.Database.Password,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	if accessSecret == "" {
		return Config{}, fmt.Errorf("missing required environment variable ACCESS_TOKEN_SECRET")
	}
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if refreshSecret == "" {
		return Config{}, fmt.Errorf("missing required environment variable REFRESH_TOKEN_SECRET")
	}
	if accessSecret == refreshSecret {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	accessTTL, err := parseTTL("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	refreshTTL, err := parseTTL("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg.Auth = Auth{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func parseTTL(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return ttl, nil
}

func parseSameSite(value string) http.SameSite {
	switch value {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
