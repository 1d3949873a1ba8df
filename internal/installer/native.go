package installer

import (
	"github.com/rs/zerolog"

	"github.com/RosieTheGhostie/seaside-installer/internal/logging"
	"github.com/RosieTheGhostie/seaside-installer/internal/ownership"
	"github.com/RosieTheGhostie/seaside-installer/internal/pathenv"
	"github.com/RosieTheGhostie/seaside-installer/internal/platform"
)

// PlatformOptions selects and configures a Platform.
type PlatformOptions struct {
	// OS defaults to the running operating system.
	OS platform.OS
	// Env defaults to platform.DefaultEnv().
	Env *platform.Env
	// Layout overrides the resolved install locations.
	Layout *platform.Layout

	// Toolchain picks the Windows binary; MSVC when empty.
	Toolchain platform.Toolchain
	// Update marks an in-place update, which leaves PATH alone on Windows.
	Update bool
	// PathStore overrides the registry-backed PATH store on Windows.
	PathStore pathenv.Store

	Logger zerolog.Logger
}

// NewPlatform builds the Platform described by opts.
func NewPlatform(opts PlatformOptions) (Platform, error) {
	target := opts.OS
	if target == "" {
		native, err := platform.Native()
		if err != nil {
			return nil, err
		}
		target = native
	}

	env := platform.DefaultEnv()
	if opts.Env != nil {
		env = *opts.Env
	}

	var layout platform.Layout
	if opts.Layout != nil {
		layout = *opts.Layout
	} else {
		resolved, err := platform.Resolve(target, env)
		if err != nil {
			return nil, err
		}
		layout = resolved
	}

	switch target {
	case platform.Linux:
		var owner *ownership.Owner
		if name := platform.SudoUser(env.Getenv); name != "" {
			o, err := ownership.Lookup(name)
			if err != nil {
				return nil, err
			}
			// Files are already owned by the right user.
			if o.UID != ownership.Current().UID {
				owner = &o
			}
		}
		return NewLinux(layout, owner), nil
	case platform.Windows:
		store := opts.PathStore
		if store == nil {
			registryStore, err := pathenv.NewRegistryStore()
			if err != nil {
				return nil, err
			}
			store = registryStore
		}
		mutator := pathenv.NewMutator(store, logging.ComponentLogger(opts.Logger, "pathenv"))
		return NewWindows(layout, opts.Toolchain, !opts.Update, mutator), nil
	default:
		return nil, platform.ErrUnsupported
	}
}
