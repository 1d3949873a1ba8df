package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/RosieTheGhostie/seaside-installer/internal/ownership"
	"github.com/RosieTheGhostie/seaside-installer/internal/pathenv"
	"github.com/RosieTheGhostie/seaside-installer/internal/platform"
	"github.com/RosieTheGhostie/seaside-installer/internal/ui"
)

// Platform holds the OS-specific steps of an installation. The shared
// decision logic lives in Installer.
type Platform interface {
	// Name is the target OS.
	Name() platform.OS
	// Layout returns the install locations.
	Layout() platform.Layout
	// BinaryAsset is the release asset holding the seaside executable.
	BinaryAsset() string
	// FinishBinary runs after a fresh binary has been written.
	FinishBinary(ctx context.Context, out *ui.Printer) error
	// FinishConfig runs after a fresh config has been written.
	FinishConfig(ctx context.Context, out *ui.Printer) error
	// RemoveBinary undoes everything the binary install did. It reports
	// false when there was nothing to remove.
	RemoveBinary(ctx context.Context, out *ui.Printer) (bool, error)
}

// binaryMode is applied to the downloaded Linux executable.
const binaryMode fs.FileMode = 0o755

// Linux installs a single executable into /usr/local/bin.
type Linux struct {
	layout platform.Layout
	// owner, when set, receives the config directory after it is written.
	owner *ownership.Owner
}

// NewLinux returns the Linux platform for layout. owner may be nil.
func NewLinux(layout platform.Layout, owner *ownership.Owner) *Linux {
	return &Linux{layout: layout, owner: owner}
}

// Name implements Platform.
func (l *Linux) Name() platform.OS { return platform.Linux }

// Layout implements Platform.
func (l *Linux) Layout() platform.Layout { return l.layout }

// BinaryAsset implements Platform.
func (l *Linux) BinaryAsset() string { return platform.LinuxBinaryAsset }

// FinishBinary marks the binary executable.
func (l *Linux) FinishBinary(_ context.Context, _ *ui.Printer) error {
	if err := os.Chmod(l.layout.BinaryPath, binaryMode); err != nil {
		return fmt.Errorf("marking %s as executable: %w", l.layout.BinaryPath, err)
	}
	return nil
}

// FinishConfig hands the config directory to the sudo user, if any.
func (l *Linux) FinishConfig(_ context.Context, out *ui.Printer) error {
	if l.owner == nil {
		return nil
	}
	out.Infof("transferring ownership of config to %s...", l.owner.Name)
	return l.owner.Apply(l.layout.ConfigDir)
}

// RemoveBinary deletes the executable.
func (l *Linux) RemoveBinary(_ context.Context, _ *ui.Printer) (bool, error) {
	if err := os.Remove(l.layout.BinaryPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Windows installs into a dedicated directory and optionally registers it
// in the user PATH.
type Windows struct {
	layout    platform.Layout
	toolchain platform.Toolchain
	// modifyPath is false for in-place updates, which must not touch PATH.
	modifyPath bool
	path       *pathenv.Mutator
}

// NewWindows returns the Windows platform. path is used for PATH
// registration on install and unregistration on uninstall.
func NewWindows(
	layout platform.Layout,
	toolchain platform.Toolchain,
	modifyPath bool,
	path *pathenv.Mutator,
) *Windows {
	if toolchain == "" {
		toolchain = platform.MSVC
	}
	return &Windows{
		layout:     layout,
		toolchain:  toolchain,
		modifyPath: modifyPath,
		path:       path,
	}
}

// Name implements Platform.
func (w *Windows) Name() platform.OS { return platform.Windows }

// Layout implements Platform.
func (w *Windows) Layout() platform.Layout { return w.layout }

// BinaryAsset implements Platform.
func (w *Windows) BinaryAsset() string { return w.toolchain.BinaryAsset() }

// FinishBinary adds the install directory to the user PATH unless this is
// an update.
func (w *Windows) FinishBinary(_ context.Context, out *ui.Printer) error {
	if !w.modifyPath {
		return nil
	}

	dir := w.layout.InstallDir
	out.Infof("adding %q to PATH...", dir)
	added, err := w.path.Add(dir)
	if err != nil {
		return err
	}
	if !added {
		out.Infof("already in PATH. operation aborted")
		return nil
	}
	out.Infof("successfully added %q to PATH", dir)
	out.Infof("restart your shell for the PATH change to take effect")
	return nil
}

// FinishConfig implements Platform.
func (w *Windows) FinishConfig(context.Context, *ui.Printer) error { return nil }

// RemoveBinary deletes the install directory and drops it from PATH.
func (w *Windows) RemoveBinary(_ context.Context, out *ui.Printer) (bool, error) {
	dir := w.layout.InstallDir

	existed, err := removeTree(dir)
	if err != nil {
		return false, err
	}

	out.Infof("removing %q from PATH...", dir)
	removed, err := w.path.Remove(dir)
	if err != nil {
		return existed, err
	}
	if removed {
		out.Infof("successfully removed %q from PATH", dir)
	} else {
		out.Infof("already not in PATH. operation aborted")
	}
	return existed, nil
}

// removeTree deletes dir recursively and reports whether it existed.
func removeTree(dir string) (bool, error) {
	if _, err := os.Lstat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return true, err
	}
	return true, nil
}
