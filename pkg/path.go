package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// debugBinary matches the default output name of the dlv debugger.
var debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)

// baseName reduces an executable path to a bare command name: the
// extension and any leading dots are removed, and debugger binaries are
// reported as [Name].
func baseName(path string) string {
	id := strings.TrimLeft(filepath.Base(path), ".")
	id = strings.TrimSuffix(id, filepath.Ext(id))

	if id == "" || debugBinary.MatchString(id) {
		return Name
	}

	return id
}

// Prefix returns the name of the running executable after resolving links.
// It names the configuration and cache directories.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}

		return baseName(exe)
	},
)

// Invoked returns the name the program was invoked as, without resolving
// links. A link named after an alias dispatches to that alias.
func Invoked() string {
	if len(os.Args) == 0 {
		return Name
	}

	return baseName(os.Args[0])
}

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
	},
)

// CacheDir returns the directory used for transient files such as
// profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
	},
)

// userDir returns the directory reported by lookup, falling back to a
// hidden directory under the home directory, then to the working directory.
func userDir(lookup func() (string, error), hidden string) string {
	if dir, err := lookup(); err == nil {
		return dir
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, hidden)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}
