package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intersdk/internal/fsutil"
)

func TestCheckPath_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	assert.NoError(t, fsutil.CheckPath(path, false, ".pdf"))
}

func TestCheckPath_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	err := fsutil.CheckPath(path, false, ".pdf")
	assert.ErrorContains(t, err, "already exists")
}

func TestCheckPath_EnforcesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := fsutil.CheckPath(path, false, ".pdf")
	assert.ErrorContains(t, err, ".pdf")
}

func TestCheckPath_MustExist(t *testing.T) {
	dir := t.TempDir()

	err := fsutil.CheckPath(filepath.Join(dir, "missing.pdf"), true, ".pdf")
	assert.ErrorContains(t, err, "does not exist")

	path := filepath.Join(dir, "present.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.NoError(t, fsutil.CheckPath(path, true, ".pdf"))
}

func TestCheckPath_DirectoryIsNotAFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "some.pdf")
	require.NoError(t, os.Mkdir(dir, 0o755))

	err := fsutil.CheckPath(dir, true, ".pdf")
	assert.ErrorContains(t, err, "not a regular file")
}
