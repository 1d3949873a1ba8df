// Command seaside-installer installs, updates, and uninstalls seaside.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/RosieTheGhostie/seaside-installer/internal/cli"
	"github.com/RosieTheGhostie/seaside-installer/internal/installer"
	"github.com/RosieTheGhostie/seaside-installer/internal/ui"
	"github.com/RosieTheGhostie/seaside-installer/pkg/version"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	return report(os.Stderr, err)
}

func newRootCmd() *cobra.Command {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetVersionTemplate(versionLine())
	return root
}

func versionLine() string {
	return "seaside-installer " + version.GetVersion() + " (commit " + version.GetCommit() + ")\n"
}

// report prints err for the user and returns the matching exit code.
func report(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	out := ui.New(w)
	out.Errorf("%v", err)
	code := exitCode(err)
	switch {
	case code == exitUsage:
		out.Infof("run 'seaside-installer --help' for usage")
	case installer.IsPermissionDenied(err):
		out.Infof("you may need to run this as root/admin")
	}
	return code
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		return exitUsage
	}
	return exitError
}
