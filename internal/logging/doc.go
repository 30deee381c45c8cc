// Package logging provides structured logging for the pngtidy CLI using slog.
//
// The package supports text and JSON output formats, verbosity-derived log
// levels, a logger carried on context.Context, and helpers for testing.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Debug("skipped entry", "name", "notes.txt", "reason", "not-png")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
