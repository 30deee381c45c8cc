package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/pngtidy/cmd"
	"github.com/thoreinstein/pngtidy/internal/errors"
	"github.com/thoreinstein/pngtidy/internal/paths"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown or man page documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		outputDir, _ := c.Flags().GetString("out")
		man, _ := c.Flags().GetBool("man")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --out <dir>")
		}

		if err := genDocs(outputDir, man); err != nil {
			return err
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().String("out", "", "output directory for documentation")
	genDocCmd.Flags().Bool("man", false, "generate man pages instead of Markdown")
	rootCmd.AddCommand(genDocCmd)
}

func genDocs(outputDir string, man bool) error {
	if err := paths.EnsureDir(outputDir, 0o755); err != nil {
		return err
	}

	// Auto-generated tags would make every build differ
	rootCmd.DisableAutoGenTag = true

	if man {
		header := &doc.GenManHeader{
			Title:   "PNGTIDY",
			Section: "1",
			Source:  "pngtidy " + cmd.Version,
		}
		return errors.Wrap(doc.GenManTree(rootCmd, header, outputDir), "generating man pages")
	}
	return errors.Wrap(doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler), "generating markdown")
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// pngtidy_config_init.md -> pngtidy config init
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s command"
---
`, title, title)
}

func linkHandler(name string) string {
	return "./" + strings.ToLower(name)
}
