package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nested", "deeper", "users.json")

	dir, err := EnsureParentDir(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "nested", "deeper"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "users.json")

	_, err := EnsureParentDir(path)
	require.NoError(t, err)
	_, err = EnsureParentDir(path)
	require.NoError(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`[]`), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// Overwrite must fully replace previous contents.
	require.NoError(t, WriteFileAtomic(path, []byte(`[{"id":"1"}]`), 0o600))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	// No leftover temp files.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
