package validation

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unemploycli/internal/shared/testutil"
)

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out", "charts")
		require.NoError(t, v.ValidateOutputDirectory(dir))
		assert.DirExists(t, dir)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "write check file must be removed")
	})

	t.Run("parent is a file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		assert.Error(t, v.ValidateOutputDirectory(filepath.Join(blocker, "out")))
	})

	t.Run("read-only directory", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permissions are not enforced")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

		assert.Error(t, v.ValidateOutputDirectory(dir))
	})
}

func TestValidateFile(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()

	path := testutil.WriteCSV(t, dir, testutil.SampleCSV)
	assert.NoError(t, v.ValidateFile(path))

	err := v.ValidateFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.Error(t, v.ValidateFile(dir))
	assert.NotEmpty(t, handler.GetRecordsByLevel(slog.LevelError))
}

func TestValidateCSVFile(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()

	path := filepath.Join(dir, "rates.txt")
	require.NoError(t, os.WriteFile(path, []byte(testutil.SampleCSV), 0644))

	require.NoError(t, v.ValidateCSVFile(path))
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Dataset does not have a .csv extension")

	handler.Clear()
	require.NoError(t, v.ValidateCSVFile(testutil.WriteCSV(t, dir, testutil.SampleCSV)))
	assert.Empty(t, handler.GetRecordsByLevel(slog.LevelWarn))
}
