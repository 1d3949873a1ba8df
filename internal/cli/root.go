package cli

import (
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/RosieTheGhostie/seaside-installer/internal/download"
	"github.com/RosieTheGhostie/seaside-installer/internal/pathenv"
	"github.com/RosieTheGhostie/seaside-installer/internal/platform"
)

// Options injects the process edges so commands can run against temp
// directories and fakes. Zero values select the real environment.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// OS forces the target platform.
	OS platform.OS
	// Layout overrides the resolved install locations.
	Layout *platform.Layout
	// Env overrides the environment used for config paths and SUDO_USER.
	Env *platform.Env
	// PathStore overrides the Windows registry-backed PATH store.
	PathStore pathenv.Store
	// Fetcher overrides the HTTP download sink.
	Fetcher download.Fetcher

	LookupEnv func(string) (string, bool)
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.LookupEnv == nil {
		o.LookupEnv = os.LookupEnv
	}
	return o
}

// targetsWindows reports whether Windows-only flags apply.
func (o Options) targetsWindows() bool {
	if o.OS != "" {
		return o.OS == platform.Windows
	}
	return runtime.GOOS == "windows"
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the seaside-installer command for the real process.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithOptions(ver, Options{})
}

// NewRootCmdWithOptions creates the root command with explicit process edges.
func NewRootCmdWithOptions(ver string, opts Options) *cobra.Command {
	opts = opts.withDefaults()
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "seaside-installer",
		Short:         "Install, update, and uninstall seaside",
		Long:          "seaside-installer fetches a seaside release from GitHub and installs the binary and its default config.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, flags, opts)
		},
	}

	cmd.SetIn(opts.In)
	cmd.SetOut(opts.Out)
	cmd.SetErr(opts.Err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.logFormat, "log-format", "", "diagnostic log format (console or json)")
	pf.StringVar(&flags.settings, "settings", "", "path to an installer settings file")

	cmd.AddCommand(newInstallCmd(opts), newUninstallCmd(opts))

	return cmd
}

const rootCmdExample = `  # Install seaside 1.2.3
  seaside-installer install 1.2.3

  # Install without being asked before overwriting
  seaside-installer install 1.2.3 --yes

  # Remove seaside but keep its config
  seaside-installer uninstall --keep-config`
