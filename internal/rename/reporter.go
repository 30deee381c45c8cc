package rename

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for run reports.
type Format string

const (
	// FormatText produces human-readable progress and summary lines.
	FormatText Format = "text"
	// FormatJSON produces a single JSON document at the end of the run.
	FormatJSON Format = "json"
)

// ParseFormat validates a report format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", errors.Newf("invalid output format %q (valid: text, json)", s)
	}
}

// Reporter receives progress from a Renamer.
type Reporter interface {
	// Start is called once the directory has been resolved.
	Start(dir string)
	// Found is called with the number of entries listed.
	Found(n int)
	// Decision is called for every entry, in listing order.
	Decision(d Decision)
	// Summary is called once after every entry was processed.
	Summary(s *Summary) error
}

// NewReporter returns the reporter for format, writing to out.
func NewReporter(out io.Writer, format Format, dryRun bool) Reporter {
	if format == FormatJSON {
		return NewJSONReporter(out)
	}
	return NewTextReporter(out, dryRun)
}

type nopReporter struct{}

func (nopReporter) Start(string)           {}
func (nopReporter) Found(int)              {}
func (nopReporter) Decision(Decision)      {}
func (nopReporter) Summary(*Summary) error { return nil }

// TextReporter writes one line per state change and a summary block.
// Skips that need no attention (not a file, not a PNG, already normalized)
// print nothing.
type TextReporter struct {
	out    io.Writer
	dryRun bool
}

// NewTextReporter creates a TextReporter.
func NewTextReporter(out io.Writer, dryRun bool) *TextReporter {
	return &TextReporter{out: out, dryRun: dryRun}
}

// Start prints the directory being processed.
func (r *TextReporter) Start(dir string) {
	fmt.Fprintf(r.out, "Processing files in directory: %s\n", dir)
	fmt.Fprintln(r.out, "Scanning files...")
}

// Found prints the number of listed entries.
func (r *TextReporter) Found(n int) {
	fmt.Fprintf(r.out, "Found %d items in the directory.\n", n)
}

// Decision prints renames, conflicts and failures.
func (r *TextReporter) Decision(d Decision) {
	switch {
	case d.Action == ActionRename && r.dryRun:
		fmt.Fprintf(r.out, "  %s '%s' -> '%s'\n", color.CyanString("Would rename:"), d.Name, d.NewName)
	case d.Action == ActionRename:
		fmt.Fprintf(r.out, "  %s '%s' -> '%s'\n", color.GreenString("Renamed:"), d.Name, d.NewName)
	case d.Reason == ReasonConflict:
		fmt.Fprintf(r.out, "  %s '%s': Target '%s' already exists.\n",
			color.YellowString("Skipped renaming"), d.Name, d.NewName)
	case d.Reason == ReasonFailed:
		fmt.Fprintf(r.out, "  %s '%s': %s\n", color.RedString("Error renaming"), d.Name, d.Error)
	}
}

// Summary prints the final tally.
func (r *TextReporter) Summary(s *Summary) error {
	header := "--- Renaming Summary ---"
	renamed := fmt.Sprintf("Successfully renamed: %d files", s.Renamed)
	if s.DryRun {
		header = "--- Renaming Summary (dry run) ---"
		renamed = fmt.Sprintf("Would rename: %d files", s.Renamed)
	}

	errLine := fmt.Sprintf("Errors during renaming: %d", s.Errors)
	if s.HasErrors() {
		errLine = color.RedString(errLine)
	}

	_, err := fmt.Fprintf(r.out, "\n%s\n%s\n%s\n%s\n%s\n",
		header,
		renamed,
		fmt.Sprintf("Skipped (no changes needed, not a PNG, or target exists): %d", s.Skipped),
		errLine,
		"------------------------",
	)
	return errors.Wrap(err, "writing summary")
}

// JSONReporter collects decisions and writes them with the summary as one
// JSON document.
type JSONReporter struct {
	out       io.Writer
	dir       string
	decisions []Decision
}

// NewJSONReporter creates a JSONReporter.
func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{out: out}
}

// jsonReport is the document written by JSONReporter.
type jsonReport struct {
	Dir string `json:"dir"`
	*Summary
	Decisions []Decision `json:"decisions"`
}

// Start records the directory.
func (r *JSONReporter) Start(dir string) { r.dir = dir }

// Found preallocates the decision list.
func (r *JSONReporter) Found(n int) { r.decisions = make([]Decision, 0, n) }

// Decision records d.
func (r *JSONReporter) Decision(d Decision) { r.decisions = append(r.decisions, d) }

// Summary writes the report.
func (r *JSONReporter) Summary(s *Summary) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(jsonReport{Dir: r.dir, Summary: s, Decisions: r.decisions}), "encoding JSON report")
}
