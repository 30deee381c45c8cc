// Package config loads pngtidy's settings.
//
// Settings resolve in this order: command-line flags bound by the CLI,
// PNGTIDY_* environment variables, a config file, then defaults. The
// config file is optional; without one pngtidy processes
// public/resized_cards relative to the working directory.
//
// The file is looked up as ./pngtidy.yaml, then
// $XDG_CONFIG_HOME/pngtidy/pngtidy.yaml. A .toml or .json extension works
// too; the format follows the extension:
//
//	version: 1
//	dir: public/resized_cards
//	output: text   # or json
package config
