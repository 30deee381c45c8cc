// Package paths resolves the filesystem locations pngtidy uses for its own
// configuration.
//
// It wraps github.com/adrg/xdg for XDG Base Directory compliance, so the
// config file lives at $XDG_CONFIG_HOME/pngtidy/pngtidy.yaml on Linux and
// the platform equivalent elsewhere.
package paths
