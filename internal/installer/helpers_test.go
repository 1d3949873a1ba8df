package installer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/RosieTheGhostie/seaside-installer/internal/download"
	"github.com/RosieTheGhostie/seaside-installer/internal/pathenv"
	"github.com/RosieTheGhostie/seaside-installer/internal/platform"
	"github.com/RosieTheGhostie/seaside-installer/internal/release"
	"github.com/RosieTheGhostie/seaside-installer/internal/ui"
)

const releaseBase = "https://github.com/RosieTheGhostie/seaside/releases/download"

// fakeFetcher serves canned bytes keyed by URL and records every request.
type fakeFetcher struct {
	assets map[string][]byte
	calls  []string
}

func newFakeFetcher(version string) *fakeFetcher {
	url := func(asset string) string { return releaseBase + "/v" + version + "/" + asset }
	return &fakeFetcher{assets: map[string][]byte{
		url(platform.LinuxBinaryAsset):       []byte("linux-binary-" + version),
		url(platform.WindowsMSVCBinaryAsset): []byte("msvc-binary-" + version),
		url(platform.WindowsGNUBinaryAsset):  []byte("gnu-binary-" + version),
		url(platform.ConfigAsset):            []byte("# default config\nversion = \"" + version + "\"\n"),
	}}
}

func (f *fakeFetcher) Fetch(_ context.Context, url, dest string) error {
	f.calls = append(f.calls, url)
	body, ok := f.assets[url]
	if !ok {
		return &download.NetworkError{URL: url, StatusCode: 404}
	}
	return os.WriteFile(dest, body, 0o644)
}

// scriptedConfirmer answers questions in order and records them.
type scriptedConfirmer struct {
	answers   []bool
	questions []string
}

func (c *scriptedConfirmer) Confirm(message string) (bool, error) {
	c.questions = append(c.questions, message)
	if len(c.answers) == 0 {
		return false, fmt.Errorf("unexpected question %q", message)
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

type fixture struct {
	layout  platform.Layout
	fetcher *fakeFetcher
	confirm *scriptedConfirmer
	output  *bytes.Buffer
	path    *pathenv.MemoryStore
}

func newFixture(t *testing.T, version string, answers ...bool) *fixture {
	t.Helper()

	root := t.TempDir()
	installDir := filepath.Join(root, "bin")
	return &fixture{
		layout: platform.Layout{
			BinaryPath: filepath.Join(installDir, "seaside"),
			InstallDir: installDir,
			ConfigDir:  filepath.Join(root, "config", "seaside"),
		},
		fetcher: newFakeFetcher(version),
		confirm: &scriptedConfirmer{answers: answers},
		output:  &bytes.Buffer{},
		path:    &pathenv.MemoryStore{},
	}
}

func (f *fixture) linux() *Installer {
	return f.installer(NewLinux(f.layout, nil))
}

func (f *fixture) windows(toolchain platform.Toolchain, modifyPath bool) *Installer {
	mutator := pathenv.NewMutator(f.path, zerolog.Nop())
	return f.installer(NewWindows(f.layout, toolchain, modifyPath, mutator))
}

func (f *fixture) installer(p Platform) *Installer {
	return New(p, f.fetcher,
		WithConfirmer(f.confirm),
		WithResolver(release.NewResolver(release.DefaultRepoURL)),
		WithPrinter(ui.New(f.output)),
		WithLogger(zerolog.Nop()),
	)
}

func (f *fixture) writeBinary(t *testing.T, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(f.layout.BinaryPath), 0o755))
	require.NoError(t, os.WriteFile(f.layout.BinaryPath, []byte(contents), 0o755))
}

func (f *fixture) writeConfig(t *testing.T, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(f.layout.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(f.layout.ConfigPath(), []byte(contents), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func mustVersion(t *testing.T, raw string) *semver.Version {
	t.Helper()
	v, err := semver.StrictNewVersion(raw)
	require.NoError(t, err)
	return v
}

func assetURL(version, asset string) string {
	return releaseBase + "/v" + version + "/" + asset
}
