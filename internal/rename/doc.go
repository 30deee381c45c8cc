// Package rename normalizes PNG filenames in a single directory.
//
// For every regular file directly inside the directory whose extension is
// "png" in any case, the base name (everything before the last '.') has each
// '.' and then each ' ' replaced with '_'. The extension keeps its original
// casing. Files are renamed in place unless the new name is already taken.
//
// The [Renamer] works against an afero.Fs so callers can run it on the real
// filesystem, an in-memory one, or a read-only view:
//
//	r := rename.New(afero.NewOsFs(), rename.WithReporter(rename.NewTextReporter(os.Stdout, false)))
//	summary, err := r.Run(ctx, "public/resized_cards")
//
// Run reports progress through a [Reporter] and returns a [Summary] of the
// renamed, skipped and failed entries. A file that fails to rename counts as
// both an error and a skip.
package rename
