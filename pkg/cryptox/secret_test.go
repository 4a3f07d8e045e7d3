package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.Len(t, first, 43)

	second, err := LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.Equal(t, first, second, "existing secret must be reused")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrGenerateSecret_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := LoadOrGenerateSecret(path)
	require.Error(t, err)
}

func TestLoadOrGenerateSecret_Distinct(t *testing.T) {
	dir := t.TempDir()

	a, err := LoadOrGenerateSecret(filepath.Join(dir, "a"))
	require.NoError(t, err)
	b, err := LoadOrGenerateSecret(filepath.Join(dir, "b"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
