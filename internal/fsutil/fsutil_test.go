package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modctx/cli/internal/testutil"
)

func TestProvision_CreatesMissing(t *testing.T) {
	base := t.TempDir()

	got, err := Provision(base, "a", "b", "c")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(got))
	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestProvision_ExistingUnchanged(t *testing.T) {
	base := t.TempDir()
	testutil.WriteFile(t, base, filepath.Join("sub", "marker.txt"), "x")

	got, err := Provision(base, "sub")
	require.NoError(t, err)

	// No side effect: the marker survives.
	_, err = os.Stat(filepath.Join(got, "marker.txt"))
	assert.NoError(t, err)
}

func TestProvision_Idempotent(t *testing.T) {
	base := t.TempDir()

	first, err := Provision(base, "env")
	require.NoError(t, err)

	second, err := Provision(base, "env")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCopyDir_SourceRemains(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	testutil.WriteFile(t, src, "nested/file.txt", "content")

	dst := filepath.Join(base, "dst")
	require.NoError(t, CopyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "nested", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = os.Stat(filepath.Join(src, "nested", "file.txt"))
	assert.NoError(t, err, "source must remain after copy")
}

func TestMoveDir_SourceRemoved(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	testutil.WriteFile(t, src, "nested/file.txt", "content")

	dst := filepath.Join(base, "dst")
	require.NoError(t, MoveDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "nested", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source must be gone after move")
}
