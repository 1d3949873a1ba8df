package cli

import (
	"github.com/spf13/cobra"

	"github.com/RosieTheGhostie/seaside-installer/internal/installer"
	"github.com/RosieTheGhostie/seaside-installer/internal/logging"
	"github.com/RosieTheGhostie/seaside-installer/internal/ui"
)

// newUninstallCmd creates the uninstall command.
func newUninstallCmd(opts Options) *cobra.Command {
	var keepConfig bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove seaside",
		Long: `Removes the seaside binary and its config directory. On Windows the install
directory is also dropped from the user PATH.

Files that are already gone are skipped, so uninstall can be run repeatedly.`,
		Example: `  # Remove everything
  seaside-installer uninstall

  # Keep Seaside.toml for a later reinstall
  seaside-installer uninstall --keep-config`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("uninstall takes no arguments, got %q", args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			p, err := installer.NewPlatform(installer.PlatformOptions{
				OS:        opts.OS,
				Env:       opts.Env,
				Layout:    opts.Layout,
				PathStore: opts.PathStore,
				Logger:    *log,
			})
			if err != nil {
				return err
			}

			inst := installer.New(p, fetcher(opts, log),
				installer.WithPrinter(ui.New(cmd.ErrOrStderr())),
				installer.WithLogger(logging.ComponentLogger(*log, "installer")),
			)
			err = inst.Uninstall(ctx, installer.UninstallRequest{KeepConfig: keepConfig})
			logFailure(log, "uninstall", err)
			return err
		},
	}

	cmd.Flags().BoolVar(&keepConfig, "keep-config", false, "leave the config directory in place")

	return cmd
}
