package exitcode

import "testing"

func TestStringKnownCodes(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{CheckFailed, "Check failed"},
		{ConfigError, "Configuration error"},
		{FileSystemError, "File system error"},
		{UsageError, "Usage error"},
	}
	for _, tc := range cases {
		if got := String(tc.code); got != tc.want {
			t.Errorf("String(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestStringUnknownCode(t *testing.T) {
	if got := String(99); got != "Unknown error" {
		t.Errorf("String(99) = %q, want %q", got, "Unknown error")
	}
}

func TestCheckFailedIsOne(t *testing.T) {
	// The pre-commit contract: 1 blocks the commit.
	if CheckFailed != 1 {
		t.Fatalf("CheckFailed = %d, want 1", CheckFailed)
	}
	if Success != 0 {
		t.Fatalf("Success = %d, want 0", Success)
	}
}
