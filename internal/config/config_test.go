package config

import (
	"testing"
	"time"
)

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "production", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "fitness", SSLMode: ""},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret", JWTIssuer: "iss", JWTAudience: "aud"},
		CORS:  CORSConfig{AllowedOrigin: "https://app.example.com"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_ProductionRequiresCORSOrigin(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "production", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "fitness", SSLMode: "require"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret", JWTIssuer: "iss", JWTAudience: "aud"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without CORS_ALLOWED_ORIGIN")
	}
}

func TestValidate_LocalDefaultsSSLModeAndTTLs(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "fitness", SSLMode: ""},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.Auth.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected access TTL default, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL != 30*24*time.Hour {
		t.Fatalf("expected refresh TTL default, got %v", c.Auth.RefreshTokenTTL)
	}
	if c.Auth.UpstreamTimeout != 5*time.Second {
		t.Fatalf("expected upstream timeout default, got %v", c.Auth.UpstreamTimeout)
	}
}

func TestValidate_RefreshTTLMustExceedAccessTTL(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "fitness"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth: AuthConfig{
			JWTSecret:       "secret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: time.Minute,
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error when refresh TTL <= access TTL")
	}
}
