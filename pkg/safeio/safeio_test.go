package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadContainedInsideBase(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := ReadContained(base, path)
	if err != nil {
		t.Fatalf("ReadContained failed: %v", err)
	}
	if string(data) != "version: 1\n" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestReadContainedRejectsEscape(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []string{
		outside,
		filepath.Join(base, "..", filepath.Base(filepath.Dir(outside)), "secret"),
	}
	for _, path := range cases {
		if _, err := ReadContained(base, path); err == nil {
			t.Errorf("expected containment error for %q", path)
		}
	}
}

func TestReadContainedMissingFile(t *testing.T) {
	base := t.TempDir()
	_, err := ReadContained(base, filepath.Join(base, "absent"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
