package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirValidator_ValidateDataDir(t *testing.T) {
	v := NewDirValidator(nil)

	t.Run("existing directory", func(t *testing.T) {
		assert.NoError(t, v.ValidateDataDir(t.TempDir()))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := v.ValidateDataDir(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		err := v.ValidateDataDir(path)
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestDirValidator_ValidateOutputDir(t *testing.T) {
	v := NewDirValidator(nil)

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports", "nested")

		require.NoError(t, v.ValidateOutputDir(dir))
		assert.DirExists(t, dir)
	})

	t.Run("cleans up probe file", func(t *testing.T) {
		dir := t.TempDir()

		require.NoError(t, v.ValidateOutputDir(dir))
		assert.NoFileExists(t, filepath.Join(dir, ".write_test"))
	})
}
