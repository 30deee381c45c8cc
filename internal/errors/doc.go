// Package errors provides error handling conventions for the pngtidy CLI.
//
// It defines sentinel errors for the fatal failure conditions of a run,
// an ExitError type that carries a process exit code and an optional
// suggestion, and thin re-exports of github.com/cockroachdb/errors so
// callers need a single import for wrapping and inspection.
//
// # Exit Codes
//
//   - ExitSuccess (0): the run completed, even if some files failed to rename
//   - ExitUser (1): the target directory is missing or not a directory
//   - ExitSystem (2): the directory could not be listed, or another I/O failure
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and suggestion:
//
//	err := errors.NewUserError(errors.ErrDirNotFound, "Run pngtidy from the project root")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
