// Package platform supplies the paths and release asset names seaside is
// installed with on each supported operating system.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// OS identifies a supported target operating system.
type OS string

const (
	// Linux installs into /usr/local/bin.
	Linux OS = "linux"
	// Windows installs into a dedicated directory under ProgramData.
	Windows OS = "windows"
)

// ConfigName is the basename of seaside's configuration file.
const ConfigName = "Seaside.toml"

// Release asset names published alongside every seaside release.
const (
	LinuxBinaryAsset       = "x86_64-unknown-linux-gnu-seaside"
	WindowsMSVCBinaryAsset = "x86_64-pc-windows-msvc-seaside.exe"
	WindowsGNUBinaryAsset  = "x86_64-pc-windows-gnu-seaside.exe"
	ConfigAsset            = ConfigName
)

// Fixed install locations.
const (
	LinuxBinaryPath   = "/usr/local/bin/seaside"
	WindowsInstallDir = `C:\ProgramData\seaside`
	WindowsBinaryPath = WindowsInstallDir + `\seaside.exe`
)

// ErrUnsupported indicates the running operating system has no seaside build.
var ErrUnsupported = errors.New("unsupported operating system")

// Native returns the OS the installer is running on.
func Native() (OS, error) {
	return Parse(runtime.GOOS)
}

// Parse maps a GOOS-style name to a supported OS.
func Parse(name string) (OS, error) {
	switch OS(strings.ToLower(name)) {
	case Linux:
		return Linux, nil
	case Windows:
		return Windows, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

// Toolchain selects which Windows build of seaside is fetched.
// It implements pflag.Value so it can be bound directly to a flag.
type Toolchain string

const (
	// MSVC is the default Windows toolchain.
	MSVC Toolchain = "msvc"
	// GNU selects the mingw build.
	GNU Toolchain = "gnu"
)

// String implements pflag.Value.
func (t *Toolchain) String() string {
	if t == nil || *t == "" {
		return string(MSVC)
	}
	return string(*t)
}

// Set implements pflag.Value.
func (t *Toolchain) Set(value string) error {
	switch Toolchain(strings.ToLower(value)) {
	case MSVC:
		*t = MSVC
	case GNU:
		*t = GNU
	default:
		return fmt.Errorf("invalid toolchain %q (expected msvc or gnu)", value)
	}
	return nil
}

// Type implements pflag.Value.
func (t *Toolchain) Type() string {
	return "toolchain"
}

// BinaryAsset returns the Windows release asset built with this toolchain.
func (t Toolchain) BinaryAsset() string {
	if t == GNU {
		return WindowsGNUBinaryAsset
	}
	return WindowsMSVCBinaryAsset
}
