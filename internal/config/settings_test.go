package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosieTheGhostie/seaside-installer/internal/release"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	s := Default()
	assert.Equal(t, release.DefaultRepoURL, s.RepoURL)
	assert.Equal(t, "warn", s.Logging.Level)
	assert.Equal(t, "console", s.Logging.Format)
	require.NoError(t, s.Validate())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`repo_url: https://mirror.example.com/seaside
logging:
  level: debug
`), 0o600))

	s, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com/seaside", s.RepoURL)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "console", s.Logging.Format, "unset fields keep defaults")
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.yaml")

	s, err := Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	_, err = Load(missing, true)
	require.ErrorIs(t, err, os.ErrNotExist)

	s, err = Load("", true)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unterminated"), 0o600))

	_, err := Load(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing settings file")
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvRepoURL:   "http://localhost:9000/seaside",
		EnvLogLevel:  "debug",
		EnvLogFormat: "json",
	}
	s := Default()
	s.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "http://localhost:9000/seaside", s.RepoURL)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "json", s.Logging.Format)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
		errMsg string
	}{
		{name: "ftp scheme", mutate: func(s *Settings) { s.RepoURL = "ftp://example.com/x" }, errMsg: "http(s)"},
		{name: "no host", mutate: func(s *Settings) { s.RepoURL = "https:///x" }, errMsg: "no host"},
		{name: "bad level", mutate: func(s *Settings) { s.Logging.Level = "shouty" }, errMsg: "logging.level"},
		{name: "bad format", mutate: func(s *Settings) { s.Logging.Format = "xml" }, errMsg: "logging.format"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			require.ErrorIs(t, err, ErrInvalidSettings)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefaultSettingsPath_Env(t *testing.T) {
	t.Parallel()

	got := DefaultSettingsPath(func(k string) string {
		if k == EnvSettings {
			return "/etc/seaside-installer.yaml"
		}
		return ""
	})
	assert.Equal(t, "/etc/seaside-installer.yaml", got)
}
