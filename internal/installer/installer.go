// Package installer reconciles the requested seaside version with what is
// already on disk, then installs, updates, or uninstalls it.
//
// Nothing here is transactional: a failure part-way leaves whatever state was
// reached, and running the installer again is the way to recover.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/RosieTheGhostie/seaside-installer/internal/download"
	"github.com/RosieTheGhostie/seaside-installer/internal/logging"
	"github.com/RosieTheGhostie/seaside-installer/internal/platform"
	"github.com/RosieTheGhostie/seaside-installer/internal/prompt"
	"github.com/RosieTheGhostie/seaside-installer/internal/release"
	"github.com/RosieTheGhostie/seaside-installer/internal/tomlver"
	"github.com/RosieTheGhostie/seaside-installer/internal/ui"
)

// Prompts shown before replacing existing files.
const (
	QuestionReplaceBinary = "would you like to replace the existing binary?"
	QuestionReplaceConfig = "would you like to replace the existing config?"
	QuestionUpdateVersion = "would you like to update the config version to match?"
)

// dirMode is used for any directory the installer has to create.
const dirMode fs.FileMode = 0o755

// InstallRequest asks for one version of seaside to be installed.
type InstallRequest struct {
	Version *semver.Version
	// AssumeYes answers every confirmation with yes.
	AssumeYes bool
}

// UninstallRequest asks for seaside to be removed.
type UninstallRequest struct {
	// KeepConfig leaves the config directory alone.
	KeepConfig bool
}

// Installer drives install and uninstall for one Platform.
type Installer struct {
	platform  Platform
	fetcher   download.Fetcher
	confirmer prompt.Confirmer
	resolver  release.Resolver
	out       *ui.Printer
	logger    zerolog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithConfirmer sets who answers replace/update questions.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(i *Installer) {
		if c != nil {
			i.confirmer = c
		}
	}
}

// WithResolver sets where release assets are downloaded from.
func WithResolver(r release.Resolver) Option {
	return func(i *Installer) { i.resolver = r }
}

// WithPrinter sets the stream for user-facing status lines.
func WithPrinter(p *ui.Printer) Option {
	return func(i *Installer) {
		if p != nil {
			i.out = p
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(i *Installer) { i.logger = logger }
}

// New returns an Installer for p that downloads through fetcher. By default
// questions are asked on the process's stdin and stdout.
func New(p Platform, fetcher download.Fetcher, opts ...Option) *Installer {
	i := &Installer{
		platform:  p,
		fetcher:   fetcher,
		confirmer: prompt.NewInteractive(os.Stdin, os.Stdout, os.Stderr),
		resolver:  release.NewResolver(release.DefaultRepoURL),
		out:       ui.New(os.Stderr),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install fetches req.Version. The binary and the config are handled in that
// order, each independently:
//
//   - absent: installed
//   - present with AssumeYes: overwritten
//   - present otherwise: the user is asked before overwriting
//
// When an existing config is kept, the user is offered a rewrite of its
// version line instead.
func (i *Installer) Install(ctx context.Context, req InstallRequest) error {
	if req.Version == nil {
		return errors.New("no version requested")
	}

	confirmer := i.confirmer
	if req.AssumeYes {
		confirmer = prompt.AlwaysYes{}
	}
	ask := !req.AssumeYes

	layout := i.platform.Layout()
	log := i.logger.With().
		Str("operation", "install").
		Str("platform", string(i.platform.Name())).
		Str("version", req.Version.String()).
		Logger()

	i.out.Infof("installing seaside...")

	install, _, err := i.decide(confirmer, ask, layout.BinaryPath, "a seaside binary is already present", QuestionReplaceBinary)
	if err != nil {
		return err
	}
	if install {
		if err := i.installBinary(ctx, req.Version, layout); err != nil {
			return err
		}
	} else {
		log.Debug().Str("path", layout.BinaryPath).Msg("keeping existing binary")
	}

	configPath := layout.ConfigPath()
	install, configExists, err := i.decide(confirmer, ask, configPath,
		"a seaside config file is already present", QuestionReplaceConfig)
	if err != nil {
		return err
	}
	switch {
	case install:
		if err := i.installConfig(ctx, req.Version, layout); err != nil {
			return err
		}
	case configExists:
		update, err := confirmer.Confirm(QuestionUpdateVersion)
		if err != nil {
			return err
		}
		if update {
			if err := i.updateConfigVersion(configPath, req.Version); err != nil {
				return err
			}
		} else {
			log.Debug().Str("path", configPath).Msg("keeping existing config version")
		}
	}

	i.out.Infof("install complete! :3")
	log.Info().Msg("install complete")
	return nil
}

// decide applies the overwrite table for one file. It reports whether the
// file should be (re)installed and whether it was already present. The
// warning is only shown when the user is about to be asked.
func (i *Installer) decide(confirmer prompt.Confirmer, ask bool, path, warning, question string) (bool, bool, error) {
	present, err := exists(path)
	if err != nil {
		return false, false, err
	}
	if !present {
		return true, false, nil
	}
	if ask {
		i.out.Warnf("%s", warning)
	}
	replace, err := confirmer.Confirm(question)
	return replace, true, err
}

func (i *Installer) installBinary(ctx context.Context, v *semver.Version, layout platform.Layout) error {
	i.out.Infof("installing binary...")

	if err := i.fetch(ctx, v, i.platform.BinaryAsset(), layout.BinaryPath); err != nil {
		return err
	}
	if err := i.platform.FinishBinary(ctx, i.out); err != nil {
		return err
	}

	i.out.Infof("successfully installed binary")
	return nil
}

func (i *Installer) installConfig(ctx context.Context, v *semver.Version, layout platform.Layout) error {
	i.out.Infof("installing config...")

	if err := i.fetch(ctx, v, platform.ConfigAsset, layout.ConfigPath()); err != nil {
		return err
	}
	if err := i.platform.FinishConfig(ctx, i.out); err != nil {
		return err
	}

	i.out.Infof("successfully installed config")
	return nil
}

func (i *Installer) updateConfigVersion(path string, v *semver.Version) error {
	i.out.Infof("updating config version...")

	replaced, err := tomlver.Rewrite(path, v)
	if err != nil {
		return fmt.Errorf("updating config version: %w", err)
	}
	if !replaced {
		i.out.Warnf("no version line found in %s; config left unchanged", path)
		return nil
	}

	i.out.Infof("successfully updated config version")
	return nil
}

// fetch downloads asset into dest, creating dest's parent directory first.
func (i *Installer) fetch(ctx context.Context, v *semver.Version, asset, dest string) error {
	url, err := i.resolver.URL(v, asset)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), dirMode); err != nil {
		return err
	}

	i.logger.Debug().
		Str("operation", "fetch").
		Str("asset", asset).
		Str("url", url).
		Str("dest", dest).
		Msg("downloading from GitHub")

	return i.fetcher.Fetch(ctx, url, dest)
}

// exists reports whether path is present. Errors other than not-found, such
// as permission denied, are returned.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
