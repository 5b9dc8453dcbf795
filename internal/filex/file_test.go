package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "a", "b", "pinkeeper.db")

	got, err := EnsureParentDir(file)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "a", "b"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data", "pinkeeper.db")

	first, err := EnsureParentDir(file)
	require.NoError(t, err)

	second, err := EnsureParentDir(file)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	got, err := EnsureParentDir("pinkeeper.db")
	require.NoError(t, err)
	require.Equal(t, ".", got)
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "pinkeeper.db"))
	require.Error(t, err, "should fail when a file occupies the directory path")
}
