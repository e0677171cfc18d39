package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPort(t *testing.T) {
	t.Setenv("TEST_PORT", "8080")
	if p, err := Port("TEST_PORT", "1"); err != nil || p != "8080" {
		t.Fatalf("unexpected port %q err=%v", p, err)
	}
	t.Setenv("TEST_PORT", "99999")
	if _, err := Port("TEST_PORT", "1"); err == nil {
		t.Fatal("expected error for out of range port")
	}
}

func TestRequiredString(t *testing.T) {
	t.Setenv("TEST_REQUIRED", "")
	if _, err := RequiredString("TEST_REQUIRED"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	if d := Duration("TEST_DUR", time.Minute); d != 90*time.Second {
		t.Fatalf("expected 90s, got %s", d)
	}
	t.Setenv("TEST_DUR", "30")
	if d := Duration("TEST_DUR", time.Minute); d != 30*time.Second {
		t.Fatalf("expected 30s, got %s", d)
	}
	t.Setenv("TEST_DUR", "-5m")
	if d := Duration("TEST_DUR", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback, got %s", d)
	}
}

func TestIntAndList(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	if n := Int("TEST_INT", 7); n != 7 {
		t.Fatalf("expected fallback 7, got %d", n)
	}
	t.Setenv("TEST_LIST", " a, ,b ,")
	got := List("TEST_LIST")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("DOTENV_NEW=from-file\nDOTENV_SET=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DOTENV_SET", "from-env")
	t.Setenv("DOTENV_NEW", "")
	os.Unsetenv("DOTENV_NEW")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if v := os.Getenv("DOTENV_NEW"); v != "from-file" {
		t.Fatalf("expected value from file, got %q", v)
	}
	if v := os.Getenv("DOTENV_SET"); v != "from-env" {
		t.Fatalf("existing variable overridden: %q", v)
	}
}
