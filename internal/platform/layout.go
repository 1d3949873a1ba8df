package platform

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// appID is the application identifier used for the per-user config directory.
const appID = "seaside"

// Layout is where an installation lives on disk.
type Layout struct {
	// BinaryPath is the full path of the seaside executable.
	BinaryPath string
	// InstallDir is the directory holding the binary. On Windows it is
	// dedicated to seaside and is also the entry registered in PATH.
	InstallDir string
	// ConfigDir is the per-user configuration directory.
	ConfigDir string
}

// ConfigPath returns the full path of Seaside.toml.
func (l Layout) ConfigPath() string {
	return filepath.Join(l.ConfigDir, ConfigName)
}

// Env is the slice of the process environment needed to resolve a Layout.
type Env struct {
	Getenv        func(string) string
	UserConfigDir func() (string, error)
	// LookupHome returns the home directory of the named user.
	LookupHome func(name string) (string, error)
}

// DefaultEnv reads the real process environment.
func DefaultEnv() Env {
	return Env{
		Getenv:        os.Getenv,
		UserConfigDir: os.UserConfigDir,
		LookupHome: func(name string) (string, error) {
			u, err := user.Lookup(name)
			if err != nil {
				return "", err
			}
			return u.HomeDir, nil
		},
	}
}

// Resolve returns the layout for target.
func Resolve(target OS, env Env) (Layout, error) {
	configDir, err := ConfigDir(target, env)
	if err != nil {
		return Layout{}, err
	}

	switch target {
	case Linux:
		return Layout{
			BinaryPath: LinuxBinaryPath,
			InstallDir: filepath.Dir(LinuxBinaryPath),
			ConfigDir:  configDir,
		}, nil
	case Windows:
		return Layout{
			BinaryPath: WindowsBinaryPath,
			InstallDir: WindowsInstallDir,
			ConfigDir:  configDir,
		}, nil
	default:
		return Layout{}, fmt.Errorf("%w: %s", ErrUnsupported, target)
	}
}

// ConfigDir resolves the per-user config directory for seaside.
//
// On Linux the installer usually runs under sudo, where the user config
// directory would be root's. When SUDO_USER names a non-root user, that
// user's ~/.config/seaside is returned instead.
func ConfigDir(target OS, env Env) (string, error) {
	switch target {
	case Linux:
		if sudoUser := SudoUser(env.Getenv); sudoUser != "" && env.LookupHome != nil {
			home, err := env.LookupHome(sudoUser)
			if err != nil {
				return "", fmt.Errorf("resolving home directory of %s: %w", sudoUser, err)
			}
			return filepath.Join(home, ".config", appID), nil
		}
		base, err := userConfigDir(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(base, appID), nil
	case Windows:
		base, err := userConfigDir(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(base, appID, "config"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, target)
	}
}

// SudoUser returns the invoking user when running under sudo, or "".
// A SUDO_USER of root is ignored since root's own paths already apply.
func SudoUser(getenv func(string) string) string {
	if getenv == nil {
		return ""
	}
	name := getenv("SUDO_USER")
	if name == "root" {
		return ""
	}
	return name
}

func userConfigDir(env Env) (string, error) {
	if env.UserConfigDir == nil {
		return "", errors.New("no user config directory resolver")
	}
	dir, err := env.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("couldn't find a config directory: %w", err)
	}
	return dir, nil
}
