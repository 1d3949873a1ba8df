package installer

import (
	"context"
)

// Uninstall removes the binary and, unless req.KeepConfig, the config
// directory. Anything already missing is skipped, so running it twice is
// safe.
func (i *Installer) Uninstall(ctx context.Context, req UninstallRequest) error {
	log := i.logger.With().
		Str("operation", "uninstall").
		Str("platform", string(i.platform.Name())).
		Bool("keep_config", req.KeepConfig).
		Logger()

	i.out.Infof("uninstalling seaside...")

	i.out.Infof("uninstalling binary...")
	removed, err := i.platform.RemoveBinary(ctx, i.out)
	if err != nil {
		return err
	}
	if removed {
		i.out.Infof("successfully uninstalled binary")
	} else {
		i.out.Infof("binary was not present")
	}

	if !req.KeepConfig {
		if err := i.uninstallConfig(); err != nil {
			return err
		}
	} else {
		log.Debug().Str("path", i.platform.Layout().ConfigDir).Msg("keeping config")
	}

	i.out.Infof("uninstall complete! :3")
	log.Info().Msg("uninstall complete")
	return nil
}

func (i *Installer) uninstallConfig() error {
	i.out.Infof("uninstalling config...")

	existed, err := removeTree(i.platform.Layout().ConfigDir)
	if err != nil {
		return err
	}
	if !existed {
		i.out.Infof("config was not present")
		return nil
	}

	i.out.Infof("successfully uninstalled config")
	return nil
}
