package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q, want :5000", cfg.HTTPAddr)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.JWTIssuer != "bikemarket-auth" {
		t.Errorf("JWTIssuer = %q", cfg.JWTIssuer)
	}
	if got := cfg.TokenTTL(); got != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", got)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load without JWT_SECRET should fail")
	}
}

func TestLoad_BcryptCostOutOfRange(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BCRYPT_COST", "40")
	if _, err := Load(); err == nil {
		t.Fatal("Load with BCRYPT_COST=40 should fail")
	}
}

func TestTokenTTL_Invalid(t *testing.T) {
	c := &Config{JWTTTL: "bogus"}
	if got := c.TokenTTL(); got != time.Hour {
		t.Errorf("invalid TTL should fall back to 1h, got %v", got)
	}
	c = &Config{JWTTTL: "30m"}
	if got := c.TokenTTL(); got != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", got)
	}
}

func TestEventsKafkaBrokersList(t *testing.T) {
	c := &Config{EventsKafkaBrokers: "localhost:9092, broker2:9092 ,"}
	got := c.EventsKafkaBrokersList()
	if len(got) != 2 || got[0] != "localhost:9092" || got[1] != "broker2:9092" {
		t.Errorf("EventsKafkaBrokersList = %v", got)
	}
	c = &Config{}
	if got := c.EventsKafkaBrokersList(); got != nil {
		t.Errorf("empty brokers should return nil, got %v", got)
	}
}
