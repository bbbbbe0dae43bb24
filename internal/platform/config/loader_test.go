package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader().WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != defaultPort {
		t.Errorf("expected default port %d, got %d", defaultPort, cfg.Server.Port)
	}
	if cfg.Admin.BootstrapPassword != defaultAdminPassword {
		t.Errorf("unexpected bootstrap password: %q", cfg.Admin.BootstrapPassword)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("expected memory session store, got %q", cfg.Session.Store)
	}
	if cfg.Session.Secret == "" {
		t.Error("expected a generated session secret when unset")
	}
	if cfg.Session.TTL != defaultSessionTTL {
		t.Errorf("unexpected session TTL: %v", cfg.Session.TTL)
	}
	if cfg.Challenge.VerifyURL != defaultChallengeURL {
		t.Errorf("unexpected verify URL: %q", cfg.Challenge.VerifyURL)
	}
	if cfg.Challenge.Timeout != 10*time.Second {
		t.Errorf("unexpected challenge timeout: %v", cfg.Challenge.Timeout)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Errorf("unexpected upstream timeout: %v", cfg.Upstream.Timeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(envPort, "8088")
	t.Setenv(envSessionSecret, "test-secret")
	t.Setenv(envSessionStore, "redis")
	t.Setenv(envSessionTTL, "2h")
	t.Setenv(envRedisAddr, "127.0.0.1:6379")
	t.Setenv(envChallengeSecret, "challenge-secret")

	cfg, err := NewLoader().WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 8088 {
		t.Errorf("expected port 8088, got %d", cfg.Server.Port)
	}
	if cfg.Session.Secret != "test-secret" {
		t.Errorf("unexpected session secret: %q", cfg.Session.Secret)
	}
	if cfg.Session.Store != "redis" {
		t.Errorf("unexpected session store: %q", cfg.Session.Store)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("unexpected session TTL: %v", cfg.Session.TTL)
	}
	if cfg.Session.Redis.Addr != "127.0.0.1:6379" {
		t.Errorf("unexpected redis addr: %q", cfg.Session.Redis.Addr)
	}
	if cfg.Challenge.Secret != "challenge-secret" {
		t.Errorf("unexpected challenge secret: %q", cfg.Challenge.Secret)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv(envPort, "not-a-port")
	if _, err := NewLoader().WithDotEnv(false).Load(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
