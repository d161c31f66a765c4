package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/recipes")
	t.Setenv("ACCEPTED_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("TOKEN_TTL_MINUTES", "60")

	settings := Load()

	if settings.Port != "9000" {
		t.Errorf("Port = %q, want 9000", settings.Port)
	}
	if settings.DatabaseURL != "postgres://localhost/recipes" {
		t.Errorf("DatabaseURL = %q", settings.DatabaseURL)
	}
	if len(settings.AcceptedOrigins) != 2 || settings.AcceptedOrigins[1] != "https://b.test" {
		t.Errorf("AcceptedOrigins = %v", settings.AcceptedOrigins)
	}
	if settings.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", settings.TokenTTL)
	}
}

func TestLoadFallsBackOnUnparsableValues(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "soon")
	t.Setenv("READ_TIMEOUT_SECONDS", "")

	settings := Load()

	if settings.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want the 24h default", settings.TokenTTL)
	}
	if settings.ReadTimeout != 180*time.Second {
		t.Errorf("ReadTimeout = %v, want the 180s default", settings.ReadTimeout)
	}
}
