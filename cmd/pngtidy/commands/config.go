package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/pngtidy/internal/config"
	"github.com/thoreinstein/pngtidy/internal/errors"
	"github.com/thoreinstein/pngtidy/internal/paths"
	"github.com/thoreinstein/pngtidy/pkg/fileutil"
)

var (
	listFormat string
	initFormat string
	initForce  bool
)

func init() {
	configListCmd.Flags().StringVar(&listFormat, "format", "yaml", "output format: yaml, toml, json")
	configInitCmd.Flags().StringVar(&initFormat, "format", "yaml", "file format: yaml, toml, json")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pngtidy configuration",
	Long: `Manage pngtidy configuration.

Settings are read from ./pngtidy.yaml (or .toml/.json), then from the user
config directory, then from PNGTIDY_* environment variables, and finally
from flags. Without a subcommand, lists the effective configuration.`,
	Example: `  # Show the effective configuration
  pngtidy config

  # Get a single value
  pngtidy config get dir

  # Write a default config file
  pngtidy config init

See Also: pngtidy config list, pngtidy config init`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigListWithWriter(cmd.OutOrStdout(), listFormat)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single effective configuration value by key.`,
	Example: `  # Get the target directory
  pngtidy config get dir

See Also: pngtidy config list`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGetWithWriter(cmd.OutOrStdout(), args[0])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List the effective configuration in YAML, TOML or JSON.`,
	Example: `  # List as YAML
  pngtidy config list

  # List as TOML
  pngtidy config list --format toml

See Also: pngtidy config get`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigListWithWriter(cmd.OutOrStdout(), listFormat)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with the default settings to the user
config directory. An existing file is kept unless --force is given.`,
	Example: `  # Create ~/.config/pngtidy/pngtidy.yaml
  pngtidy config init

  # Create a TOML file instead
  pngtidy config init --format toml

See Also: pngtidy config list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigInitWithWriter(cmd.OutOrStdout(), paths.ConfigDir(), initFormat, initForce)
	},
}

func runConfigGetWithWriter(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}
	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

func runConfigListWithWriter(w io.Writer, format string) error {
	enc, err := fileutil.ParseEncoding(format)
	if err != nil {
		return errors.NewUserError(err, "Use --format yaml, toml or json")
	}

	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}

	data, err := fileutil.Marshal(enc, cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigInitWithWriter(w io.Writer, dir, format string, force bool) error {
	enc, err := fileutil.ParseEncoding(format)
	if err != nil {
		return errors.NewUserError(err, "Use --format yaml, toml or json")
	}

	path := filepath.Join(dir, paths.AppName+"."+string(enc))
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"Pass --force to overwrite it",
		)
	}

	if err := paths.EnsureDir(dir, 0); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteEncoded(path, config.Default(), 0o600); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
