package buildinfo

import "testing"

func TestVersionDefaultsToDev(t *testing.T) {
	old := BinaryVersion
	defer func() { BinaryVersion = old }()

	BinaryVersion = "dev"
	got := Version()
	if got == "" {
		t.Fatal("Version() returned empty string")
	}
}

func TestVersionPrefersLdflags(t *testing.T) {
	old := BinaryVersion
	defer func() { BinaryVersion = old }()

	BinaryVersion = "v1.2.3"
	if got := Version(); got != "v1.2.3" {
		t.Fatalf("Version() = %q, want v1.2.3", got)
	}
}
