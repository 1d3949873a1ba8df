package release

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_URL(t *testing.T) {
	t.Parallel()

	assets := []string{
		"x86_64-unknown-linux-gnu-seaside",
		"x86_64-pc-windows-msvc-seaside.exe",
		"x86_64-pc-windows-gnu-seaside.exe",
		"Seaside.toml",
	}
	versions := []string{"1.2.3", "0.0.1", "2.0.0-rc.1", "1.0.0-beta+exp.sha.5114f85"}

	r := NewResolver("")
	for _, raw := range versions {
		v := semver.MustParse(raw)
		for _, asset := range assets {
			got, err := r.URL(v, asset)
			require.NoError(t, err)
			assert.Equal(t,
				"https://github.com/RosieTheGhostie/seaside/releases/download/v"+raw+"/"+asset, got)
		}
	}
}

func TestResolver_CustomBase(t *testing.T) {
	t.Parallel()

	r := NewResolver("http://127.0.0.1:8080/mirror/")
	got, err := r.URL(semver.MustParse("1.2.3"), "Seaside.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/mirror/releases/download/v1.2.3/Seaside.toml", got)
}

func TestResolver_Errors(t *testing.T) {
	t.Parallel()

	r := NewResolver("")
	_, err := r.URL(semver.MustParse("1.2.3"), "")
	require.ErrorIs(t, err, ErrEmptyAsset)

	_, err = r.URL(nil, "Seaside.toml")
	require.Error(t, err)
}
