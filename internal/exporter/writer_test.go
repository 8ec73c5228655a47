package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"strikingdistance/internal/config"
	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/striking"
)

func sampleResult() *striking.Result {
	rows := sampleRows()
	return &striking.Result{
		Rows:  rows,
		Stats: striking.Stats{Queries: 3, Joined: 2, InRange: 2, AfterExclusion: 2, Output: len(rows)},
	}
}

func TestWriter_WriteFile(t *testing.T) {
	paths := config.NewPaths(t.TempDir(), config.PathsConfig{})
	w := NewWriter(paths, WriteOptions{}, nil)

	path, err := w.WriteFile(DefaultFileName(FormatCSV), FormatCSV, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.OutputDir, "striking_distance.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "running shoes,/running,8,5000,60,0.71,commercial")
}

func TestWriter_WriteFile_NilPaths(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "out.json")
	w := NewWriter(nil, WriteOptions{}, nil)

	path, err := w.WriteFile(target, FormatJSON, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, target, path)
	assert.FileExists(t, target)
}

func TestWriter_WriteFile_StorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	w := NewWriter(nil, WriteOptions{}, nil)

	t.Run("parent is a file", func(t *testing.T) {
		_, err := w.WriteFile(filepath.Join(blocker, "out.csv"), FormatCSV, sampleResult())
		require.Error(t, err)

		var appErr *apierrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apierrors.ErrTypeStorage, appErr.Type)
		assert.Equal(t, filepath.Join(blocker, "out.csv"), appErr.Context["path"])
	})

	t.Run("target is a directory", func(t *testing.T) {
		_, err := w.WriteFile(t.TempDir(), FormatCSV, sampleResult())
		require.Error(t, err)

		var appErr *apierrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apierrors.ErrTypeStorage, appErr.Type)
		assert.Contains(t, appErr.Error(), "failed to create file")
	})
}

func TestWriter_WriteJSON(t *testing.T) {
	res := sampleResult()
	res.Conditions = []striking.Condition{{Code: striking.DegenerateScore, Stage: "score", Message: "zero variance"}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(nil, WriteOptions{}, nil).Write(&buf, FormatJSON, res))

	var env Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, 2, env.Count)
	assert.Equal(t, "running shoes", env.Data[0].Keyword)
	require.Len(t, env.Conditions, 1)
	assert.Equal(t, striking.DegenerateScore, env.Conditions[0].Code)
	assert.Equal(t, 3, env.Stats.Queries)
}

func TestNewEnvelope_EmptyResult(t *testing.T) {
	env := NewEnvelope(&striking.Result{})

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"data":[]`)
	assert.Contains(t, string(data), `"conditions":[]`)
	assert.Equal(t, 0, env.Count)
}

func TestWriter_WriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(nil, WriteOptions{}, nil).Write(&buf, FormatXLSX, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, striking.OutputHeader, rows[0])
	assert.Equal(t, "running shoes", rows[1][0])
	assert.Equal(t, "14.5", rows[2][2])
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(nil, WriteOptions{}, nil).Write(&buf, Format("parquet"), sampleResult())
	assert.Error(t, err)
}
