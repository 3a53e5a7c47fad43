package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "statline.toml", `left = ["mode"]`)

	changed := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { changed <- cfg }, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`left = ["bufnr"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changed:
		if len(cfg.Left) != 1 || cfg.Left[0] != "bufnr" {
			t.Errorf("reloaded Left = %v, want [bufnr]", cfg.Left)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "statline.toml", `left = ["mode"]`)

	changed := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { changed <- cfg }, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changed:
		t.Errorf("unexpected reload: %+v", cfg)
	case <-time.After(250 * time.Millisecond):
	}
}

func TestWatcherReportsBadReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "statline.toml", `left = ["mode"]`)

	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(*Config) {}, func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`left = [`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "statline.toml", "")
	w, err := NewWatcher(path, func(*Config) {}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
