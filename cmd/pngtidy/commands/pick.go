package commands

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/pngtidy/internal/errors"
	"github.com/thoreinstein/pngtidy/internal/logging"
	"github.com/thoreinstein/pngtidy/internal/rename"
)

func init() {
	rootCmd.AddCommand(pickCmd)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose which PNG files to rename",
	Long: `Plan the renames for the directory and pick the ones to apply in an
interactive fuzzy finder. Tab marks an entry, Enter applies the marked
renames, Esc cancels without renaming anything.`,
	Example: `  # Pick from public/resized_cards
  pngtidy pick

  # Pick from another directory
  pngtidy pick --dir assets/cards

  See Also: pngtidy --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := effectiveConfig()
		if err != nil {
			return err
		}
		return runPickWithWriter(cmd.Context(), cmd.OutOrStdout(), cfg.Dir, findRenames)
	},
}

// finderFunc returns the indexes of the selected pending renames.
type finderFunc func(pending []rename.Decision) ([]int, error)

// findRenames shows pending renames in a multi-select fuzzy finder.
func findRenames(pending []rename.Decision) ([]int, error) {
	return fuzzyfinder.FindMulti(
		pending,
		func(i int) string {
			return pending[i].String()
		},
		fuzzyfinder.WithPromptString("rename> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			d := pending[i]
			return fmt.Sprintf("From: %s\nTo:   %s", d.Name, d.NewName)
		}),
	)
}

func runPickWithWriter(ctx context.Context, w io.Writer, dir string, find finderFunc) error {
	logger := logging.FromContext(ctx)
	r := rename.New(appFs, rename.WithLogger(logger))

	decisions, err := r.Plan(dir)
	if err != nil {
		return exitErrorFor(err)
	}

	var pending []rename.Decision
	for _, d := range decisions {
		if d.Action == rename.ActionRename {
			pending = append(pending, d)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(w, "Nothing to rename.")
		return nil
	}

	idx, err := find(pending)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			logger.Debug("picker aborted")
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	// Apply in listing order regardless of selection order.
	slices.Sort(idx)
	selected := make([]rename.Decision, 0, len(idx))
	for _, i := range idx {
		selected = append(selected, pending[i])
	}

	r = rename.New(appFs,
		rename.WithLogger(logger),
		rename.WithReporter(rename.NewTextReporter(w, false)),
	)
	_, err = r.Apply(ctx, dir, selected)
	return exitErrorFor(err)
}
