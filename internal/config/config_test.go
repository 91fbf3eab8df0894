package config

import (
	"testing"
	"time"
)

func TestLoadRelayDefaults(t *testing.T) {
	cfg := LoadRelay()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DownstreamMode != "log" {
		t.Errorf("expected default downstream mode log, got %q", cfg.DownstreamMode)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("unexpected read timeout %v", cfg.ReadTimeout)
	}
	if cfg.ForwardToken != "" {
		t.Errorf("expected token check disabled by default, got %q", cfg.ForwardToken)
	}
}

func TestLoadRelayOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DOWNSTREAM_MODE", "webhook")
	t.Setenv("FORWARD_TOKEN", "secret")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := LoadRelay()
	if cfg.Port != "9090" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.DownstreamMode != "webhook" {
		t.Errorf("expected downstream mode override, got %q", cfg.DownstreamMode)
	}
	if cfg.ForwardToken != "secret" {
		t.Errorf("expected token override, got %q", cfg.ForwardToken)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("expected timeout override, got %v", cfg.ReadTimeout)
	}
	if !cfg.TracingEnabled {
		t.Error("expected tracing enabled")
	}
}

func TestLoadWidgetDefaults(t *testing.T) {
	cfg := LoadWidget()

	if cfg.HeaderTitle != "Chat with us" {
		t.Errorf("unexpected header title %q", cfg.HeaderTitle)
	}
	if cfg.APIURL != "" {
		t.Errorf("expected no default API URL, got %q", cfg.APIURL)
	}
}

func TestLoadWidgetMalformedDuration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-duration")
	cfg := LoadRelay()
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("expected fallback to default on malformed value, got %v", cfg.ReadTimeout)
	}
}
