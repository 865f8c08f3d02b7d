package serverrun

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	cfgpkg "github.com/rzbill/eventreg/internal/config"
	pebblestore "github.com/rzbill/eventreg/internal/storage/pebble"
)

func TestGetenvDefault(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		def      string
		envValue string
		expected string
	}{
		{name: "environment variable set", key: "EVREG_TEST_VAR", def: "default", envValue: "env_value", expected: "env_value"},
		{name: "environment variable empty", key: "EVREG_TEST_VAR_EMPTY", def: "default", envValue: "", expected: "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)
			if got := getenvDefault(tt.key, tt.def); got != tt.expected {
				t.Errorf("getenvDefault(%s, %s) = %s, expected %s", tt.key, tt.def, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.DefaultNamespaceName != "default" {
		t.Fatalf("cfg=%+v", cfg)
	}

	path := filepath.Join(t.TempDir(), "eventreg.yaml")
	if err := os.WriteFile(path, []byte("maxNamespaces: 3\nrecordChanges: false\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("EVREG_MAX_NAMESPACES", "5")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxNamespaces != 5 || cfg.RecordChanges {
		t.Fatalf("env should override file: %+v", cfg)
	}

	t.Setenv("EVREG_NAMESPACE_NAME_REGEX", "[")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestBuildLoggerFallsBack(t *testing.T) {
	t.Setenv(LogLevelEnv, "debug")
	t.Setenv(LogFormatEnv, "")
	_, cfg := buildLogger(Options{})
	if cfg.Level != "debug" || cfg.Format != "text" {
		t.Fatalf("cfg=%+v", cfg)
	}
	l, cfg := buildLogger(Options{LogLevel: "warn", LogFormat: "xml"})
	if l == nil || cfg.Level != "warn" {
		t.Fatalf("fallback logger=%v cfg=%+v", l, cfg)
	}
}

// TestRunIntegration verifies Run starts both servers and returns cleanly on
// cancellation.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	dir := t.TempDir()
	opts := Options{
		DataDir:       dir,
		GRPCAddr:      "127.0.0.1:0",
		HTTPAddr:      "127.0.0.1:0",
		Fsync:         pebblestore.FsyncModeNever,
		FsyncInterval: time.Millisecond,
		Config:        cfgpkg.Default(),
		LogLevel:      "error",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := Run(ctx, opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "store")); err != nil {
		t.Fatalf("store dir not created: %v", err)
	}
}

func TestRunReportsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = Run(ctx, Options{
		DataDir:  t.TempDir(),
		GRPCAddr: busy.Addr().String(),
		Fsync:    pebblestore.FsyncModeNever,
		Config:   cfgpkg.Default(),
		LogLevel: "error",
	})
	if err == nil {
		t.Fatalf("expected listen error")
	}
}
