package rename

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Action is what happens to a directory entry.
type Action int

const (
	// ActionSkip leaves the entry untouched.
	ActionSkip Action = iota
	// ActionRename renames the entry to Decision.NewName.
	ActionRename
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionRename:
		return "rename"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(b []byte) error {
	switch string(b) {
	case "skip":
		*a = ActionSkip
	case "rename":
		*a = ActionRename
	default:
		return errors.Newf("unknown action %q", b)
	}
	return nil
}

// Reason explains why an entry was skipped.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonNotFile   Reason = "not-a-file" // directory, device, socket, broken link
	ReasonNotPNG    Reason = "not-png"
	ReasonUnchanged Reason = "unchanged" // already normalized
	ReasonConflict  Reason = "conflict"  // target name already taken
	ReasonFailed    Reason = "error"     // the rename itself failed
)

// Decision is the outcome for one directory entry.
type Decision struct {
	// Name is the entry's current name.
	Name string `json:"name"`

	// NewName is the normalized name. Empty when the entry is not a PNG file.
	NewName string `json:"new_name,omitempty"`

	Action Action `json:"action"`
	Reason Reason `json:"reason,omitempty"`

	// Err holds the filesystem error for ReasonFailed.
	Err error `json:"-"`

	// Error mirrors Err for JSON output.
	Error string `json:"error,omitempty"`
}

// fail turns a pending rename into a failed skip.
func (d *Decision) fail(err error) {
	d.Action = ActionSkip
	d.Reason = ReasonFailed
	d.Err = err
	d.Error = err.Error()
}

// String renders the decision for logs and the interactive picker.
func (d Decision) String() string {
	if d.Action == ActionRename {
		return fmt.Sprintf("%s -> %s", d.Name, d.NewName)
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Reason)
}

// Summary aggregates the decisions of one run.
type Summary struct {
	// Total is the number of directory entries seen.
	Total int `json:"total"`

	// Renamed counts successful renames (planned renames in a dry run).
	Renamed int `json:"renamed"`

	// Skipped counts every entry not renamed, whatever the reason.
	Skipped int `json:"skipped"`

	// Errors counts failed renames. Each is also counted in Skipped.
	Errors int `json:"errors"`

	DryRun bool `json:"dry_run"`
}

// Record adds one decision to the tallies.
func (s *Summary) Record(d Decision) {
	switch {
	case d.Action == ActionRename:
		s.Renamed++
	case d.Reason == ReasonFailed:
		s.Errors++
		s.Skipped++
	default:
		s.Skipped++
	}
}

// HasErrors returns true if any rename failed.
func (s *Summary) HasErrors() bool {
	return s.Errors > 0
}
