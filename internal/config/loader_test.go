package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WORKTIME_HTTP_PORT", "")
	t.Setenv("WORKTIME_SQLITE_DSN", "")
	t.Setenv("WORKTIME_SHUTDOWN_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:worktime.db" {
		t.Errorf("expected default DSN, got %q", cfg.SQLiteDSN)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKTIME_HTTP_PORT", "9090")
	t.Setenv("WORKTIME_SQLITE_DSN", "file:/tmp/other.db")
	t.Setenv("WORKTIME_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:/tmp/other.db" {
		t.Errorf("unexpected DSN %q", cfg.SQLiteDSN)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected 30s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_ReportsAllInvalidVariables(t *testing.T) {
	t.Setenv("WORKTIME_HTTP_PORT", "not-a-port")
	t.Setenv("WORKTIME_SQLITE_DSN", "")
	t.Setenv("WORKTIME_SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for invalid values")
	}
	if !strings.Contains(err.Error(), "WORKTIME_HTTP_PORT") || !strings.Contains(err.Error(), "WORKTIME_SHUTDOWN_TIMEOUT") {
		t.Fatalf("expected both variables named, got %v", err)
	}
}

func TestLoad_RejectsNonPositivePort(t *testing.T) {
	t.Setenv("WORKTIME_HTTP_PORT", "0")
	t.Setenv("WORKTIME_SQLITE_DSN", "")
	t.Setenv("WORKTIME_SHUTDOWN_TIMEOUT", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for port 0")
	}
}
