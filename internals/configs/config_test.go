package configs

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "HTTP_PORT", "DB_DRIVER", "JWT_TTL", "FEES_EMAIL_SUFFIX"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.HTTP.Port != "3000" {
		t.Fatalf("port: %q", cfg.HTTP.Port)
	}
	if cfg.DB.Driver != "postgres" {
		t.Fatalf("driver: %q", cfg.DB.Driver)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Fatalf("jwt ttl: %v", cfg.JWT.TTL)
	}
	if cfg.Fees.EmailSuffix != "cambridge.edu.in" {
		t.Fatalf("email suffix: %q", cfg.Fees.EmailSuffix)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("FEES_EMAIL_SUFFIX", "@Example.EDU")
	t.Setenv("SEED_ON_START", "true")
	t.Setenv("APP_DEBUG", "true")

	cfg := Load()

	if cfg.HTTP.Port != "8080" {
		t.Fatalf("port: %q", cfg.HTTP.Port)
	}
	if cfg.DB.Driver != "memory" || cfg.JWT.Secret != "s3cret" {
		t.Fatalf("db/jwt: %+v %+v", cfg.DB, cfg.JWT)
	}
	if cfg.JWT.TTL != 2*time.Hour {
		t.Fatalf("jwt ttl: %v", cfg.JWT.TTL)
	}
	if cfg.Fees.EmailSuffix != "example.edu" {
		t.Fatalf("email suffix: %q", cfg.Fees.EmailSuffix)
	}
	if !cfg.Seed.OnStart || !cfg.App.Debug {
		t.Fatalf("flags: seed=%v debug=%v", cfg.Seed.OnStart, cfg.App.Debug)
	}
}

func TestAllowedOrigins(t *testing.T) {
	var cfg Config
	cfg.HTTP.AllowedOrigins = " http://a.test, ,http://b.test "

	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("origins: %v", got)
	}
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	var cfg Config
	cfg.DB.Driver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty secret with postgres")
	}

	cfg.JWT.Secret = "   "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank secret with postgres")
	}

	cfg.JWT.Secret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.JWT.Secret = ""
	cfg.DB.Driver = "memory"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory driver should allow empty secret: %v", err)
	}
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("HTTP_TRUSTED_PROXIES", "")
	if got := Load().TrustedProxies(); len(got) != 0 {
		t.Fatalf("default trusted proxies: %v", got)
	}

	t.Setenv("HTTP_TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	got := Load().TrustedProxies()
	if len(got) != 2 || got[0] != "10.0.0.0/8" || got[1] != "127.0.0.1" {
		t.Fatalf("trusted proxies: %v", got)
	}
}
