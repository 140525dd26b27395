package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected loopback host, got %s", cfg.Server.Host)
	}
	if cfg.Storage.Driver != StorageDriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Ledger.RetryInterval != 30*time.Second {
		t.Errorf("expected 30s retry interval, got %s", cfg.Ledger.RetryInterval)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("unexpected metrics config %+v", cfg.Metrics)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("STORAGE_KEY_PREFIX", "alice:")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LEDGER_FLUSH_TIMEOUT", "3s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()

	if cfg.Storage.Driver != StorageDriverRedis {
		t.Errorf("expected redis driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.KeyPrefix != "alice:" {
		t.Errorf("expected prefix alice:, got %s", cfg.Storage.KeyPrefix)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Ledger.FlushTimeout != 3*time.Second {
		t.Errorf("expected 3s flush timeout, got %s", cfg.Ledger.FlushTimeout)
	}
	if cfg.Metrics.Enabled {
		t.Error("expected metrics to be disabled")
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("LEDGER_RETRY_INTERVAL", "soon")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
	if cfg.Ledger.RetryInterval != 30*time.Second {
		t.Errorf("expected default retry interval, got %s", cfg.Ledger.RetryInterval)
	}
	if !cfg.Metrics.Enabled {
		t.Error("expected default metrics flag")
	}
}
