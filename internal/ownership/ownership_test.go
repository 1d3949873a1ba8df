package ownership

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	t.Parallel()

	o := Current()
	assert.Equal(t, os.Getuid(), o.UID)
	assert.Equal(t, os.Getgid(), o.GID)
}

func TestApply_ToSelf(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("lchown is not supported on windows")
	}
	t.Parallel()

	root := filepath.Join(t.TempDir(), "seaside")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "Seaside.toml"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink("/nonexistent/target", filepath.Join(root, "dangling")))

	require.NoError(t, Current().Apply(root), "dangling symlinks are not followed")
}

func TestApply_MissingRoot(t *testing.T) {
	t.Parallel()

	err := Current().Apply(filepath.Join(t.TempDir(), "absent"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := Lookup("seaside-no-such-user-xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seaside-no-such-user-xyz")
}

func TestLookup_Current(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows uids are SIDs")
	}
	t.Parallel()

	cur := Current()
	if cur.Name == "" {
		t.Skip("current user has no name")
	}
	o, err := Lookup(cur.Name)
	require.NoError(t, err)
	assert.Equal(t, cur.UID, o.UID)
}
