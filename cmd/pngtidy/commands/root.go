// Package commands implements the CLI commands for pngtidy.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/pngtidy/cmd"
	"github.com/thoreinstein/pngtidy/internal/config"
	"github.com/thoreinstein/pngtidy/internal/errors"
	"github.com/thoreinstein/pngtidy/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// dryRun holds the value of the --dry-run flag.
var dryRun bool

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// closeLog releases the --log-file handle, if one was opened.
var closeLog = func() error { return nil }

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error log output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./pngtidy.yaml, then the user config dir)")

	rootCmd.PersistentFlags().String("dir", config.DefaultDir,
		"directory whose PNG files are renamed")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"report what would be renamed without renaming")
	rootCmd.Flags().StringP("output", "o", config.OutputText,
		"report format: text, json")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("pngtidy version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	_, configLoadErr = config.Load(configFile)

	// Init resets viper, so flags are bound afterwards.
	_ = viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
}

var rootCmd = &cobra.Command{
	Use:   "pngtidy",
	Short: "Normalize PNG filenames in a directory",
	Long: `pngtidy renames the PNG files directly inside one directory so their
names contain no dots or spaces before the extension.

Every '.' and then every ' ' in the part of the name before the final
extension is replaced with '_'. The extension keeps its case. A file is
left alone when the new name is already taken. Subdirectories and files
with other extensions are never touched.

Without flags, pngtidy processes public/resized_cards relative to the
current directory and prints a summary.`,
	Example: `  # Normalize public/resized_cards
  pngtidy

  # Preview the renames in another directory
  pngtidy --dir assets/cards --dry-run

  # Machine-readable report
  pngtidy --output json

  # Choose which files to rename
  pngtidy pick

  See Also: pngtidy config, pngtidy pick`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logging.ConfigureColor(cmd.OutOrStdout())
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := effectiveConfig()
		if err != nil {
			return err
		}
		return runRenameWithWriter(cmd.Context(), cmd.OutOrStdout(), cfg.Dir, cfg.Output, dryRun)
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q and -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("PNGTIDY_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	switch logging.Format(logFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "Use --log-format text or --log-format json")
	}

	logger, closer, err := logging.Setup(logging.SetupOptions{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
		File:   logFile,
	})
	if err != nil {
		return errors.NewUserError(err, "Check the --log-file path")
	}
	closeLog = closer
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	logger.Debug("configuration loaded", "file", config.Used(), "dir", viper.GetString("dir"))
	return nil
}

// checkConfig reports a config file that failed to load.
func checkConfig(cmd *cobra.Command) error {
	// help, version and config init must work with a broken config
	switch cmd.Name() {
	case "help", "version", "init":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(errors.Mark(configLoadErr, errors.ErrInvalidConfig))
	}
	return nil
}

// effectiveConfig merges defaults, config file, environment and flags and
// validates the result.
func effectiveConfig() (*config.Config, error) {
	cfg := &config.Config{
		Version: viper.GetInt("version"),
		Dir:     viper.GetString("dir"),
		Output:  viper.GetString("output"),
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		err := errors.Mark(errors.Join(errs...), errors.ErrInvalidConfig)
		return nil, errors.NewConfigError(err)
	}
	return cfg, nil
}

// PrintError writes err and any suggestion it carries the way main reports
// fatal errors.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(w, exitErr.Suggestion)
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeLog(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "closing log file")
	}
	return err
}
