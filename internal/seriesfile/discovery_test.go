package seriesfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))
}

func TestDiscoverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "spring.yaml"))
	writeFile(t, filepath.Join(dir, "autumn.yml"))
	writeFile(t, filepath.Join(dir, "series", "2025", "winter.yaml"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	files, err := Discover(dir, nil)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "autumn.yml"), files[0])
	assert.Equal(t, filepath.Join(dir, "series", "2025", "winter.yaml"), files[1])
	assert.Equal(t, filepath.Join(dir, "spring.yaml"), files[2])
}

func TestDiscoverExplicitPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"))
	writeFile(t, filepath.Join(dir, "deep", "b.yaml"))

	files, err := Discover(dir, []string{"**/*.yaml"})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverDeduplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"))

	files, err := Discover(dir, []string{"*.yaml", "a.yaml"})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscoverAbsolutePattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	writeFile(t, path)

	files, err := Discover("/somewhere/else", []string{path})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0])
}

func TestDiscoverBadGlob(t *testing.T) {
	_, err := Discover(t.TempDir(), []string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad glob")
}

func TestDiscoverEmpty(t *testing.T) {
	files, err := Discover(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}
