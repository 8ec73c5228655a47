package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/exporter"
	"strikingdistance/internal/shared/testutil"
	"strikingdistance/internal/validation"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"strikingdistance"}, args...))
	return stdout.String(), stderr.String(), err
}

func fixtureArgs(f testutil.ExportFixture, extra ...string) []string {
	args := []string{"run",
		"--queries", f.Queries,
		"--keywords", f.Keywords,
		"--cannibalisation", f.Cannibalisation,
	}
	return append(args, extra...)
}

func TestRun_CSVToStdout(t *testing.T) {
	f := testutil.NewExportFixture(t)

	stdout, _, err := runCLI(t, fixtureArgs(f, "--out", "-")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Keyword,Landing Page,Average Position"))
	assert.Contains(t, stdout, "/shoes/running")
	assert.NotContains(t, stdout, "boots")
}

func TestRun_JSONCombined(t *testing.T) {
	f := testutil.NewExportFixture(t)

	stdout, _, err := runCLI(t, fixtureArgs(f, "--out", "-", "--format", "json", "--combine")...)
	require.NoError(t, err)

	var env exporter.Envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &env))
	require.Equal(t, 2, env.Count)
	assert.Equal(t, "running shoes", env.Data[0].Keyword)
	assert.Equal(t, "/shoes/running", env.Data[0].LandingPage)
	assert.Equal(t, 1.0, env.Data[0].OpportunityZScore)
	assert.Equal(t, -1.0, env.Data[1].OpportunityZScore)
	assert.Empty(t, env.Conditions)
}

func TestRun_WritesFile(t *testing.T) {
	f := testutil.NewExportFixture(t)

	t.Run("explicit path with bom", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "nested", "result.csv")

		_, stderr, err := runCLI(t, fixtureArgs(f, "--out", out, "--bom")...)
		require.NoError(t, err)
		assert.Contains(t, stderr, "wrote 3 rows to "+out)

		data := testutil.ReadFile(t, out)
		assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	})

	t.Run("default name in output dir", func(t *testing.T) {
		outDir := t.TempDir()
		t.Setenv("STRIKING_PATHS_OUTPUT_DIR", outDir)

		_, _, err := runCLI(t, fixtureArgs(f, "--format", "xlsx")...)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(outDir, "striking_distance.xlsx"))
	})
}

func TestRun_EmptyResultWarns(t *testing.T) {
	f := testutil.NewExportFixture(t)
	window := []string{"--min-position", "20", "--max-position", "25"}

	t.Run("stdout stays empty", func(t *testing.T) {
		stdout, stderr, err := runCLI(t, fixtureArgs(f, append([]string{"--out", "-"}, window...)...)...)
		require.NoError(t, err)
		assert.Contains(t, stderr, "EMPTY_RESULT")
		assert.Empty(t, stdout)
	})

	t.Run("no file written", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "result.xlsx")
		stdout, stderr, err := runCLI(t, fixtureArgs(f, append([]string{"--out", out, "--format", "xlsx"}, window...)...)...)
		require.NoError(t, err)
		assert.Contains(t, stderr, "EMPTY_RESULT")
		assert.NotContains(t, stderr, "wrote")
		assert.Empty(t, stdout)
		assert.NoFileExists(t, out)
	})

	t.Run("json keeps its envelope", func(t *testing.T) {
		stdout, _, err := runCLI(t, fixtureArgs(f, append([]string{"--out", "-", "--format", "json"}, window...)...)...)
		require.NoError(t, err)

		var env exporter.Envelope
		require.NoError(t, json.Unmarshal([]byte(stdout), &env))
		assert.Zero(t, env.Count)
		assert.Empty(t, env.Data)
		require.NotEmpty(t, env.Conditions)
		assert.Equal(t, "EMPTY_RESULT", string(env.Conditions[0].Code))
	})
}

func TestRun_Failures(t *testing.T) {
	f := testutil.NewExportFixture(t)

	t.Run("strict empty result", func(t *testing.T) {
		_, _, err := runCLI(t, fixtureArgs(f, "--out", "-", "--exclude", "shoes,boots", "--strict")...)
		require.Error(t, err)

		var appErr *apierrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apierrors.ErrTypeEmptyResult, appErr.Type)
	})

	t.Run("inverted window", func(t *testing.T) {
		_, _, err := runCLI(t, fixtureArgs(f, "--out", "-", "--min-position", "30", "--max-position", "6")...)
		require.Error(t, err)

		var appErr *apierrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apierrors.ErrTypeInvalidOptions, appErr.Type)
	})

	t.Run("missing input file", func(t *testing.T) {
		missing := f
		missing.Keywords = filepath.Join(f.Dir, "absent.csv")

		_, _, err := runCLI(t, fixtureArgs(missing, "--out", "-")...)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validation.ErrInvalidInput))
	})

	t.Run("missing columns", func(t *testing.T) {
		broken := f
		broken.Queries = testutil.WriteCSV(t, f.Dir, "broken.csv", [][]string{{"Top queries"}, {"shoes"}})

		_, _, err := runCLI(t, fixtureArgs(broken, "--out", "-")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Position")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := runCLI(t, fixtureArgs(f, "--format", "parquet")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
	})

	t.Run("required flag", func(t *testing.T) {
		_, _, err := runCLI(t, "run", "--queries", f.Queries)
		assert.Error(t, err)
	})
}

func TestRun_ConfigFileDefaults(t *testing.T) {
	f := testutil.NewExportFixture(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("pipeline:\n  min_position: 6\n  max_position: 30\n  combine_keywords: true\n"), 0644))

	stdout, _, err := runCLI(t, append([]string{"--config", cfgPath}, fixtureArgs(f, "--out", "-", "--format", "json")...)...)
	require.NoError(t, err)

	var env exporter.Envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &env))
	assert.Equal(t, 2, env.Count)
}

func TestRun_ConfigFileMissing(t *testing.T) {
	f := testutil.NewExportFixture(t)

	_, _, err := runCLI(t, append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, fixtureArgs(f, "--out", "-")...)...)
	require.Error(t, err)

	var appErr *apierrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apierrors.ErrTypeConfig, appErr.Type)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
