package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	DatabaseURL    string
	DatabaseName   string
	JWTSecret      string
	TokenTTL       time.Duration
	Environment    string
	CloudinaryURL  string
	CookieDomain   string
	AllowedOrigins []string
}

// Load reads configuration from the environment. DATABASE_URL, JWT_SECRET and
// CLOUDINARY_URL are required; a missing value is a startup failure, never a
// per-request one.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	keys := []string{
		"PORT", "DATABASE_URL", "DATABASE_NAME", "JWT_SECRET", "TOKEN_TTL",
		"ENVIRONMENT", "CLOUDINARY_URL", "COOKIE_DOMAIN", "ALLOWED_ORIGINS",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("PORT", "5001")
	v.SetDefault("DATABASE_NAME", "chirpchat")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "CLOUDINARY_URL"} {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("%s is not set", key)
		}
	}

	ttl := v.GetDuration("TOKEN_TTL")
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be a positive duration, got %q", v.GetString("TOKEN_TTL"))
	}

	return &Config{
		Port:           v.GetString("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DatabaseName:   v.GetString("DATABASE_NAME"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       ttl,
		Environment:    v.GetString("ENVIRONMENT"),
		CloudinaryURL:  v.GetString("CLOUDINARY_URL"),
		CookieDomain:   v.GetString("COOKIE_DOMAIN"),
		AllowedOrigins: v.GetStringSlice("ALLOWED_ORIGINS"),
	}, nil
}

// IsDevelopment reports whether the service runs in local-development mode.
// The Secure cookie flag is dropped only in this mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
