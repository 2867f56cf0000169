// Package exitcode provides standardized exit codes for prevet
package exitcode

// Exit codes for the prevet CLI. Git hooks treat any non-zero status as
// a rejected commit; CheckFailed is the documented code for both failed
// validations and unmet tool/environment preconditions.
const (
	Success         = 0
	CheckFailed     = 1
	ConfigError     = 2
	FileSystemError = 3
	UsageError      = 4
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case CheckFailed:
		return "Check failed"
	case ConfigError:
		return "Configuration error"
	case FileSystemError:
		return "File system error"
	case UsageError:
		return "Usage error"
	default:
		return "Unknown error"
	}
}
