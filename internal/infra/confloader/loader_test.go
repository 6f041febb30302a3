package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Addr string `koanf:"addr"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func TestLoader_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  addr: 0.0.0.0:7000\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	// Env overrides file.
	t.Setenv("RUSTBUCKET_LOG_LEVEL", "warn")

	var cfg testConfig
	loader := NewLoader(WithConfigFile(path))
	if err := loader.Load(&cfg); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:7000" {
		t.Errorf("server.addr = %q, want 0.0.0.0:7000", cfg.Server.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn (env should override file)", cfg.Log.Level)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	var cfg testConfig
	loader := NewLoader(WithConfigFile("/does/not/exist.yaml"))
	if err := loader.Load(&cfg); err == nil {
		t.Error("Load() succeeded with a missing config file")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	loader := NewLoader()
	if err := loader.LoadMap(map[string]any{"server.addr": "127.0.0.1:9"}); err != nil {
		t.Fatalf("LoadMap() error: %v", err)
	}
	if got := loader.GetString("server.addr"); got != "127.0.0.1:9" {
		t.Errorf("GetString(server.addr) = %q", got)
	}
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Stop()

	changed := make(chan string, 4)
	w.OnChange(func(p string) { changed <- p })
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	w.StartAsync()

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if filepath.Base(p) != "config.yaml" {
			t.Errorf("changed path = %q", p)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification within 3s")
	}
}
