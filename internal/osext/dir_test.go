package osext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirExists(t *testing.T) {
	baseDir := t.TempDir()
	file := filepath.Join(baseDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name    string
		dir     string
		wantErr error
	}{
		{"exists", baseDir, nil},
		{"is a file", file, ErrNotADir},
		{"missing", filepath.Join(baseDir, "missing"), os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DirExists(tt.dir)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	t.Run("creates nested", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "c")
		require.NoError(t, EnsureDir(dir))
		assert.NoError(t, DirExists(dir))
	})
	t.Run("idempotent", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "x")
		require.NoError(t, EnsureDir(dir))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "keep"), []byte("1"), 0o644))
		require.NoError(t, EnsureDir(dir))
		_, err := os.Stat(filepath.Join(dir, "keep"))
		assert.NoError(t, err, "existing content must survive")
	})
	t.Run("file in the way", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		err := EnsureDir(file)
		assert.ErrorIs(t, err, ErrNotADir)
		var oe *Error
		assert.ErrorAs(t, err, &oe)
		assert.Equal(t, file, oe.File)
	})
	t.Run("empty", func(t *testing.T) {
		assert.Error(t, EnsureDir(""))
	})
}
