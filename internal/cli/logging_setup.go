package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/RosieTheGhostie/seaside-installer/internal/config"
	"github.com/RosieTheGhostie/seaside-installer/internal/logging"
)

type globalFlags struct {
	verbose   bool
	logFormat string
	settings  string
}

type settingsKey struct{}

// setupLogging resolves installer settings (flags over env over file over
// defaults) and stores the logger and settings on the command context.
func setupLogging(cmd *cobra.Command, flags globalFlags, opts Options) error {
	path, explicit := flags.settings, flags.settings != ""
	if !explicit {
		path = config.DefaultSettingsPath(func(key string) string {
			v, _ := opts.LookupEnv(key)
			return v
		})
		_, explicit = opts.LookupEnv(config.EnvSettings)
	}

	settings, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	settings.ApplyEnv(opts.LookupEnv)

	if flags.verbose {
		settings.Logging.Level = "debug"
	}
	if flags.logFormat != "" {
		settings.Logging.Format = flags.logFormat
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logCfg := settings.Logging.ToLoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logger := logging.ComponentLogger(logging.New(logCfg), "cli")

	ctx := logger.WithContext(cmd.Context())
	ctx = contextWithSettings(ctx, settings)
	cmd.SetContext(ctx)

	logger.Debug().
		Str("command", cmd.Name()).
		Str("settings_path", path).
		Str("repo_url", settings.RepoURL).
		Msg("command started")
	return nil
}

func contextWithSettings(ctx context.Context, s config.Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// settingsFromContext returns the settings stored by setupLogging, or the
// defaults when the command ran without it.
func settingsFromContext(ctx context.Context) config.Settings {
	if s, ok := ctx.Value(settingsKey{}).(config.Settings); ok {
		return s
	}
	return config.Default()
}
