package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the config directory and file.
const AppName = "pngtidy"

// ConfigFileName is the config file name, without directory.
const ConfigFileName = AppName + ".yaml"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// ErrInvalidPath indicates the provided path is malformed or invalid.
var ErrInvalidPath = errors.New("invalid path")

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/pngtidy.
// PNGTIDY_CONFIG_DIR overrides it, which tests use to stay out of $HOME.
func ConfigDir() string {
	if dir := os.Getenv("PNGTIDY_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}

// ValidatePath checks that path is syntactically usable as a directory
// argument. It does not touch the filesystem.
func ValidatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return errors.Wrap(ErrInvalidPath, "contains NUL byte")
	}
	cleaned := filepath.Clean(path)
	if path == "" || cleaned == "" {
		return errors.Wrap(ErrInvalidPath, "empty")
	}
	return nil
}
