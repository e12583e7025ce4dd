package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Demo       DemoConfig
	Sync       SyncConfig
	AI         AIConfig
	Contact    ContactConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// DemoConfig makes the unauthenticated fallback tenant explicit. When
// DefaultUserID is set, unauthenticated pipeline calls operate on that user;
// with Enabled and no DefaultUserID the resolver falls back to any existing
// user row, creating a demo user if the table is empty.
type DemoConfig struct {
	Enabled       bool
	DefaultUserID uint
}

// SyncConfig bounds the synthetic transaction count per sync run.
type SyncConfig struct {
	MinTransactions int
	MaxTransactions int
}

type AIConfig struct {
	Model string
}

// ContactConfig throttles contact submissions per email address.
type ContactConfig struct {
	ThrottleWindow time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8080"),
			Env:          getenv("ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "roundly:roundly@tcp(localhost:3306)/roundly?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "roundly",
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Demo: DemoConfig{
			Enabled:       getenv("DEMO_MODE", "true") == "true",
			DefaultUserID: uint(getenvInt("DEMO_DEFAULT_USER_ID", 0)),
		},
		Sync: SyncConfig{
			MinTransactions: getenvInt("SYNC_MIN_TRANSACTIONS", 5),
			MaxTransactions: getenvInt("SYNC_MAX_TRANSACTIONS", 15),
		},
		AI: AIConfig{
			Model: getenv("GENAI_MODEL", "gemini-2.0-flash"),
		},
		Contact: ContactConfig{
			ThrottleWindow: 5 * time.Minute,
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
