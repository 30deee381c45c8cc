package rename

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/pngtidy/internal/errors"
	"github.com/thoreinstein/pngtidy/internal/logging"
)

// Renamer normalizes PNG filenames in one directory.
type Renamer struct {
	fs       afero.Fs
	logger   *slog.Logger
	reporter Reporter
	dryRun   bool
}

// Option configures a Renamer.
type Option func(*Renamer)

// WithLogger sets the logger used for per-entry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renamer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReporter sets where progress and the summary are written.
func WithReporter(rep Reporter) Option {
	return func(r *Renamer) {
		if rep != nil {
			r.reporter = rep
		}
	}
}

// WithDryRun makes Run report planned renames without performing them.
func WithDryRun(dryRun bool) Option {
	return func(r *Renamer) {
		r.dryRun = dryRun
	}
}

// New creates a Renamer operating on fsys.
func New(fsys afero.Fs, opts ...Option) *Renamer {
	r := &Renamer{
		fs:       fsys,
		logger:   logging.NewDiscard(),
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every immediate entry of dir and reports the summary.
//
// A missing directory, a path that is not a directory, or a listing failure
// is returned as an error before anything is renamed, and no summary is
// reported. Per-file rename failures are counted in the summary instead.
// The context is checked between entries.
func (r *Renamer) Run(ctx context.Context, dir string) (*Summary, error) {
	if err := r.checkDir(dir); err != nil {
		return nil, err
	}

	r.reporter.Start(dir)
	entries, err := r.list(dir)
	if err != nil {
		return nil, err
	}
	r.reporter.Found(len(entries))

	summary := &Summary{Total: len(entries), DryRun: r.dryRun}
	claimed := make(map[string]bool)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "rename interrupted")
		}

		d := r.classify(dir, entry)
		if d.Action == ActionRename {
			r.checkConflict(dir, &d, claimed)
		}
		if d.Action == ActionRename {
			if r.dryRun {
				claimed[d.NewName] = true
			} else {
				r.execute(dir, &d)
			}
		}

		r.log(d)
		r.reporter.Decision(d)
		summary.Record(d)
	}

	if err := r.reporter.Summary(summary); err != nil {
		return summary, errors.Wrap(err, "writing summary")
	}
	return summary, nil
}

// Plan returns the decision for every entry of dir without renaming
// anything. Renames are simulated in listing order, so two entries that
// normalize to the same name yield one rename and one conflict.
func (r *Renamer) Plan(dir string) ([]Decision, error) {
	if err := r.checkDir(dir); err != nil {
		return nil, err
	}
	entries, err := r.list(dir)
	if err != nil {
		return nil, err
	}

	claimed := make(map[string]bool)
	decisions := make([]Decision, 0, len(entries))
	for _, entry := range entries {
		d := r.classify(dir, entry)
		if d.Action == ActionRename {
			r.checkConflict(dir, &d, claimed)
		}
		if d.Action == ActionRename {
			claimed[d.NewName] = true
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

// Apply performs the rename decisions in order, re-checking each target
// immediately before renaming. Skip decisions are only counted.
func (r *Renamer) Apply(ctx context.Context, dir string, decisions []Decision) (*Summary, error) {
	if err := r.checkDir(dir); err != nil {
		return nil, err
	}

	r.reporter.Start(dir)
	r.reporter.Found(len(decisions))

	summary := &Summary{Total: len(decisions)}
	for _, d := range decisions {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "rename interrupted")
		}
		if d.Action == ActionRename {
			r.checkConflict(dir, &d, nil)
		}
		if d.Action == ActionRename {
			r.execute(dir, &d)
		}
		r.log(d)
		r.reporter.Decision(d)
		summary.Record(d)
	}

	if err := r.reporter.Summary(summary); err != nil {
		return summary, errors.Wrap(err, "writing summary")
	}
	return summary, nil
}

// checkDir verifies dir exists and is a directory.
func (r *Renamer) checkDir(dir string) error {
	info, err := r.fs.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.Mark(errors.Newf("directory not found at '%s'", dir), errors.ErrDirNotFound)
	case err != nil:
		return errors.Mark(errors.Wrapf(err, "stat %s", dir), errors.ErrListDir)
	case !info.IsDir():
		return errors.Mark(errors.Newf("'%s' is not a directory", dir), errors.ErrNotDirectory)
	}
	return nil
}

func (r *Renamer) list(dir string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "listing %s", dir), errors.ErrListDir)
	}
	return entries, nil
}

// classify applies the name rules to one entry. Symlinks are followed, so a
// link to a regular file counts as a file.
func (r *Renamer) classify(dir string, entry os.FileInfo) Decision {
	d := Decision{Name: entry.Name(), Action: ActionSkip}

	info := entry
	if entry.Mode()&os.ModeSymlink != 0 {
		target, err := r.fs.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			d.Reason = ReasonNotFile
			return d
		}
		info = target
	}
	if !info.Mode().IsRegular() {
		d.Reason = ReasonNotFile
		return d
	}

	base, ext := SplitName(d.Name)
	if !IsPNG(ext) {
		d.Reason = ReasonNotPNG
		return d
	}

	newBase := NormalizeBase(base)
	d.NewName = newBase + "." + ext
	if newBase == base {
		d.Reason = ReasonUnchanged
		return d
	}

	d.Action = ActionRename
	return d
}

// checkConflict turns d into a conflict skip when its target already exists
// on disk or was claimed by an earlier planned rename.
func (r *Renamer) checkConflict(dir string, d *Decision, claimed map[string]bool) {
	if claimed[d.NewName] {
		d.Action = ActionSkip
		d.Reason = ReasonConflict
		return
	}

	exists, err := r.exists(filepath.Join(dir, d.NewName))
	switch {
	case err != nil:
		d.fail(errors.Wrapf(err, "checking target %s", d.NewName))
	case exists:
		d.Action = ActionSkip
		d.Reason = ReasonConflict
	}
}

// exists reports whether anything, including a dangling symlink, occupies path.
func (r *Renamer) exists(path string) (bool, error) {
	var err error
	if l, ok := r.fs.(afero.Lstater); ok {
		_, _, err = l.LstatIfPossible(path)
	} else {
		_, err = r.fs.Stat(path)
	}
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (r *Renamer) execute(dir string, d *Decision) {
	oldPath := filepath.Join(dir, d.Name)
	newPath := filepath.Join(dir, d.NewName)
	if err := r.fs.Rename(oldPath, newPath); err != nil {
		d.fail(err)
	}
}

func (r *Renamer) log(d Decision) {
	switch {
	case d.Reason == ReasonFailed:
		r.logger.Warn("rename failed", "name", d.Name, "target", d.NewName, "error", d.Error)
	case d.Action == ActionRename:
		r.logger.Info("renamed", "name", d.Name, "target", d.NewName, "dry_run", r.dryRun)
	default:
		r.logger.Debug("skipped", "name", d.Name, "reason", string(d.Reason))
	}
}
