package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("services: {}\n"), 0o600))
}

func TestLocateInStartDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "docker-compose.yml"))

	d, err := Locate(dir, nil)
	require.NoError(t, err)
	require.Equal(t, dir, d.Dir)
	require.Equal(t, "docker-compose.yml", d.Name)
	require.Equal(t, filepath.Join(dir, "docker-compose.yml"), d.Path)
}

func TestLocateInParentDir(t *testing.T) {
	parent := t.TempDir()
	child := filepath.Join(parent, "scripts")
	require.NoError(t, os.Mkdir(child, 0o750))
	touch(t, filepath.Join(parent, "compose.yaml"))

	d, err := Locate(child, nil)
	require.NoError(t, err)
	require.Equal(t, parent, d.Dir)
	require.Equal(t, "compose.yaml", d.Name)
}

func TestLocatePrefersStartDirOverParent(t *testing.T) {
	parent := t.TempDir()
	child := filepath.Join(parent, "deploy")
	require.NoError(t, os.Mkdir(child, 0o750))
	touch(t, filepath.Join(parent, "docker-compose.yml"))
	touch(t, filepath.Join(child, "docker-compose.yml"))

	d, err := Locate(child, nil)
	require.NoError(t, err)
	require.Equal(t, child, d.Dir)
}

func TestLocateNotFound(t *testing.T) {
	parent := t.TempDir()
	child := filepath.Join(parent, "empty")
	require.NoError(t, os.Mkdir(child, 0o750))

	_, err := Locate(child, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLocateDoesNotRecurseBeyondParent(t *testing.T) {
	grandparent := t.TempDir()
	parent := filepath.Join(grandparent, "a")
	child := filepath.Join(parent, "b")
	require.NoError(t, os.MkdirAll(child, 0o750))
	touch(t, filepath.Join(grandparent, "docker-compose.yml"))

	_, err := Locate(child, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocateCustomNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "milvus-standalone.yml"))

	_, err := Locate(dir, nil)
	require.ErrorIs(t, err, ErrNotFound)

	d, err := Locate(dir, []string{"milvus-standalone.yml"})
	require.NoError(t, err)
	require.Equal(t, "milvus-standalone.yml", d.Name)
}

func TestLocateIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docker-compose.yml"), 0o750))

	_, err := Locate(dir, nil)
	require.ErrorIs(t, err, ErrNotFound)
}
