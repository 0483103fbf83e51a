package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("PHONE_DEFAULT_REGION", "")
	t.Setenv("SCORE_CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetPhoneDefaultRegion() != "US" {
		t.Fatalf("expected US default region, got %q", cfg.GetPhoneDefaultRegion())
	}
	if cfg.GetScoreCacheTTL() != time.Hour {
		t.Fatalf("expected fallback TTL of 1h, got %s", cfg.GetScoreCacheTTL())
	}
}

func TestLoadRejectsUnknownRegion(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("PHONE_DEFAULT_REGION", "XX")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported region")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("PHONE_DEFAULT_REGION", "US")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard origin with credentials")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" http://a.test, ,http://b.test ")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected split result: %v", got)
	}
}
