package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string // debug, info, warn, error

	// Server
	ServerAddr string
	BaseURL    string

	// Storage
	RedisURL    string // Device history, theme and sessions
	DatabaseURL string // Optional, enables persistent outcome statistics

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // Enables mTLS when set

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Outbound endpoints
	MessagingDomain string // env: MESSAGING_DOMAIN, default: "wa.me"
	QREndpoint      string // env: QR_ENDPOINT
	FlagEndpoint    string // env: FLAG_ENDPOINT

	// Background jobs
	UpstreamCheckInterval time.Duration // 0 disables the upstream checker

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Smart Whatsapp QR Code"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER

	// Ads
	AdsClient string // env: ADS_CLIENT, e.g. "ca-pub-XXXXXXXXXXXXXXXX"; empty hides the ad unit
	AdsSlot   string // env: ADS_SLOT
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TLSEnabled:    getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:   getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:    getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:     getEnv("TLS_CA_FILE", ""),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),

		MessagingDomain: getEnv("MESSAGING_DOMAIN", "wa.me"),
		QREndpoint:      getEnv("QR_ENDPOINT", "https://api.qrserver.com/v1/create-qr-code/"),
		FlagEndpoint:    getEnv("FLAG_ENDPOINT", "https://flagcdn.com/w40/"),

		UpstreamCheckInterval: getDuration("UPSTREAM_CHECK_INTERVAL", 5*time.Minute),

		SiteTitle:   getEnv("SITE_TITLE", "Smart Whatsapp QR Code"),
		SiteTagline: getEnv("SITE_TAGLINE", "Click-to-chat links and QR codes in seconds"),
		SiteFooter:  getEnv("SITE_FOOTER", "Links open in WhatsApp. Nothing leaves your device history."),

		AdsClient: getEnv("ADS_CLIENT", ""),
		AdsSlot:   getEnv("ADS_SLOT", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDuration parses a Go duration ("90s", "5m") or a plain number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsStatsEnabled returns true if a database is configured for outcome statistics.
func (c *Config) IsStatsEnabled() bool {
	return c.DatabaseURL != ""
}

// IsAdsEnabled returns true if the ad unit should be rendered.
func (c *Config) IsAdsEnabled() bool {
	return c.AdsClient != "" && c.AdsSlot != ""
}
