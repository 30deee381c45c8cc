package commands

import (
	"context"
	"io"

	"github.com/spf13/afero"

	"github.com/thoreinstein/pngtidy/internal/errors"
	"github.com/thoreinstein/pngtidy/internal/logging"
	"github.com/thoreinstein/pngtidy/internal/rename"
)

// dirSuggestion is shown when the target directory is missing or wrong.
const dirSuggestion = "Run pngtidy from the project root or pass --dir"

// appFs is the filesystem the commands operate on.
var appFs afero.Fs = afero.NewOsFs()

// runRenameWithWriter normalizes dir and writes the report to w.
func runRenameWithWriter(ctx context.Context, w io.Writer, dir, output string, dryRun bool) error {
	format, err := rename.ParseFormat(output)
	if err != nil {
		return errors.NewUserError(err, "Use --output text or --output json")
	}

	r := rename.New(appFs,
		rename.WithLogger(logging.FromContext(ctx)),
		rename.WithReporter(rename.NewReporter(w, format, dryRun)),
		rename.WithDryRun(dryRun),
	)

	_, err = r.Run(ctx, dir)
	return exitErrorFor(err)
}

// exitErrorFor maps a fatal rename error to its exit code and suggestion.
func exitErrorFor(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrDirNotFound), errors.Is(err, errors.ErrNotDirectory):
		return errors.NewUserError(err, dirSuggestion)
	case errors.Is(err, errors.ErrListDir):
		return errors.NewSystemError(err, "Check the directory permissions")
	default:
		return errors.NewSystemError(err, "")
	}
}
