package cli

import (
	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/RosieTheGhostie/seaside-installer/internal/download"
	"github.com/RosieTheGhostie/seaside-installer/internal/installer"
	"github.com/RosieTheGhostie/seaside-installer/internal/logging"
	"github.com/RosieTheGhostie/seaside-installer/internal/platform"
	"github.com/RosieTheGhostie/seaside-installer/internal/prompt"
	"github.com/RosieTheGhostie/seaside-installer/internal/release"
	"github.com/RosieTheGhostie/seaside-installer/internal/ui"
)

var _ pflag.Value = (*platform.Toolchain)(nil)

type installFlags struct {
	yes       bool
	update    bool
	toolchain platform.Toolchain
}

// newInstallCmd creates the install command.
func newInstallCmd(opts Options) *cobra.Command {
	var flags installFlags

	cmd := &cobra.Command{
		Use:   "install VERSION",
		Short: "Install or update seaside",
		Long: `Downloads the VERSION release of seaside and installs the binary and the
default Seaside.toml config.

Existing files are not replaced without asking unless --yes is given. When the
existing config is kept, you are offered to update its version line instead.`,
		Example: `  # Fresh install
  seaside-installer install 1.2.3

  # Replace everything without prompting
  seaside-installer install 1.2.3 -y`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("install takes exactly one VERSION argument, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := semver.StrictNewVersion(args[0])
			if err != nil {
				return usageErrorf("invalid VERSION %q: %w", args[0], err)
			}
			return runInstall(cmd, opts, flags, v)
		},
	}

	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "replace existing files without asking")
	if opts.targetsWindows() {
		cmd.Flags().VarP(&flags.toolchain, "toolchain", "t", "Windows build to install (msvc or gnu)")
		cmd.Flags().BoolVarP(&flags.update, "update", "u", false, "update in place and leave PATH untouched")
	}

	return cmd
}

func runInstall(cmd *cobra.Command, opts Options, flags installFlags, v *semver.Version) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	p, err := installer.NewPlatform(installer.PlatformOptions{
		OS:        opts.OS,
		Env:       opts.Env,
		Layout:    opts.Layout,
		Toolchain: flags.toolchain,
		Update:    flags.update,
		PathStore: opts.PathStore,
		Logger:    *log,
	})
	if err != nil {
		return err
	}

	if !flags.yes && !isTerminal(opts.In) {
		log.Debug().Msg("stdin is not a terminal; answers are read from the pipe")
	}

	inst := installer.New(p, fetcher(opts, log),
		installer.WithConfirmer(prompt.NewInteractive(opts.In, cmd.OutOrStdout(), cmd.ErrOrStderr())),
		installer.WithResolver(release.NewResolver(settingsFromContext(ctx).RepoURL)),
		installer.WithPrinter(ui.New(cmd.ErrOrStderr())),
		installer.WithLogger(logging.ComponentLogger(*log, "installer")),
	)

	err = inst.Install(ctx, installer.InstallRequest{
		Version:   v,
		AssumeYes: flags.yes,
	})
	logFailure(log, "install", err)
	return err
}

// logFailure records the failure class of err, if any.
func logFailure(log *zerolog.Logger, operation string, err error) {
	if err == nil {
		return
	}
	log.Debug().
		Err(err).
		Str("operation", operation).
		Stringer("error_kind", installer.KindOf(err)).
		Bool("permission_denied", installer.IsPermissionDenied(err)).
		Msg("operation failed")
}

// fetcher returns the injected Fetcher or the HTTP download sink.
func fetcher(opts Options, log *zerolog.Logger) download.Fetcher {
	if opts.Fetcher != nil {
		return opts.Fetcher
	}
	return download.NewSink(download.WithLogger(logging.ComponentLogger(*log, "download")))
}
