package exporter

import (
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unemploycli/internal/shared/testutil"
	"unemploycli/pkg/contracts/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	writer := NewCSVWriter(logger)

	tests := []struct {
		name     string
		existing string
		options  WriteOptions
		wantErr  error
		want     [][]string
	}{
		{
			name: "new file with headers",
			options: WriteOptions{
				Headers: []string{"A", "B"},
				Records: [][]string{{"1", "2"}, {"3", "4"}},
			},
			want: [][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name:     "truncate existing",
			existing: "old,data\n",
			options: WriteOptions{
				Headers: []string{"A"},
				Records: [][]string{{"new"}},
			},
			want: [][]string{{"A"}, {"new"}},
		},
		{
			name:     "exclusive refuses existing file",
			existing: "keep,me\n",
			options: WriteOptions{
				Headers:   []string{"A"},
				Exclusive: true,
			},
			wantErr: os.ErrExist,
			want:    [][]string{{"keep", "me"}},
		},
		{
			name: "exclusive creates new file",
			options: WriteOptions{
				Headers:   []string{"A"},
				Records:   [][]string{{"x"}},
				Exclusive: true,
			},
			want: [][]string{{"A"}, {"x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "out.csv")
			if tt.existing != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0644))
			}

			err := writer.WriteCSV(path, tt.options)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, readCSV(t, path))
		})
	}

	assert.True(t, handler.ContainsMessage("Writing CSV file"))
}

// readOnlyReopen creates the file with the requested flags, then hands back
// a read-only handle so every write to it fails.
func readOnlyReopen(name string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return os.Open(name)
}

func TestCSVWriter_FailedWrite(t *testing.T) {
	original := openFile
	openFile = readOnlyReopen
	t.Cleanup(func() { openFile = original })

	options := WriteOptions{
		Headers: RateHeaders(),
		Records: [][]string{{"2020-01-31", "India", "7.5"}},
	}

	t.Run("exclusive removes the partial file", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger(t)
		path := filepath.Join(t.TempDir(), "rates.csv")

		exclusive := options
		exclusive.Exclusive = true
		err := NewCSVWriter(logger).WriteCSV(path, exclusive)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to flush csv")
		assert.NoFileExists(t, path)
	})

	t.Run("truncating write leaves the file in place", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.csv")
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

		err := NewCSVWriter(nil).WriteCSV(path, options)

		require.Error(t, err)
		assert.FileExists(t, path)
	})
}

func TestRateRows(t *testing.T) {
	records := []domain.RateRecord{
		testutil.Record("India", 2019, time.January, 6.1),
		testutil.Record("India", 2019, time.February, 6.0),
		testutil.Record("India", 2020, time.May, 13.8),
		{Region: "India", Rate: math.NaN()},
	}

	rows := RateRows(records)

	assert.Equal(t, []string{"Date", "Region", "Unemployment_Rate"}, RateHeaders())
	assert.Equal(t, [][]string{
		{"2019-01-31", "India", "6.1"},
		{"2019-02-28", "India", "6.0"},
		{"2020-05-31", "India", "13.8"},
		{"", "India", ""},
	}, rows)
}
