package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if the given writer supports ANSI color codes.
// FORCE_COLOR enables color for any writer. Otherwise it returns false if:
//   - The writer is not a TTY
//   - The NO_COLOR environment variable is set
//   - The TERM environment variable is set to "dumb"
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(_ io.Writer, isTTY bool) bool {
	// Respect NO_COLOR standard (https://no-color.org)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if v, ok := os.LookupEnv("FORCE_COLOR"); ok && v != "0" {
		return true
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return isTTY
}

// ConfigureColor toggles fatih/color's package-level helpers
// (color.GreenString and friends) to match what w supports.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}
