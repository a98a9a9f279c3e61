package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetters(t *testing.T) {
	t.Setenv("CERTGEN_TEST_STRING", "modern")
	t.Setenv("CERTGEN_TEST_INT", " 42 ")
	t.Setenv("CERTGEN_TEST_FLOAT", "2.5")
	t.Setenv("CERTGEN_TEST_BOOL", "true")
	t.Setenv("CERTGEN_TEST_BAD", "not a number")

	if got := GetString("CERTGEN_TEST_STRING", "classic"); got != "modern" {
		t.Errorf("GetString() = %v, want modern", got)
	}
	if got := GetString("CERTGEN_TEST_UNSET", "classic"); got != "classic" {
		t.Errorf("GetString() = %v, want classic", got)
	}
	if got := GetInt("CERTGEN_TEST_INT", 0); got != 42 {
		t.Errorf("GetInt() = %v, want 42", got)
	}
	if got := GetInt("CERTGEN_TEST_BAD", 7); got != 7 {
		t.Errorf("GetInt() = %v, want fallback 7", got)
	}
	if got := GetFloat("CERTGEN_TEST_FLOAT", 0); got != 2.5 {
		t.Errorf("GetFloat() = %v, want 2.5", got)
	}
	if got := GetFloat("CERTGEN_TEST_BAD", 3); got != 3 {
		t.Errorf("GetFloat() = %v, want fallback 3", got)
	}
	if got := GetBool("CERTGEN_TEST_BOOL", false); !got {
		t.Errorf("GetBool() = %v, want true", got)
	}
	if got := GetBool("CERTGEN_TEST_BAD", true); !got {
		t.Errorf("GetBool() = %v, want fallback true", got)
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CERTGEN_TEST_FROM_FILE=from-file\nCERTGEN_TEST_PRESET=from-file\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Setenv("CERTGEN_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("CERTGEN_TEST_FROM_FILE") })

	LoadEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	if got := GetString("CERTGEN_TEST_FROM_FILE", ""); got != "from-file" {
		t.Errorf("expected the file value, got %q", got)
	}
	if got := GetString("CERTGEN_TEST_PRESET", ""); got != "from-env" {
		t.Errorf("expected the environment to win, got %q", got)
	}
}
