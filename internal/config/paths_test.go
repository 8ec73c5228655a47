package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "exports")

	tests := []struct {
		name       string
		cfg        PathsConfig
		wantOutput string
		wantLogs   string
	}{
		{
			name:       "defaults when empty",
			wantOutput: filepath.Join(base, DefaultOutputDir),
			wantLogs:   filepath.Join(base, DefaultLogsDir),
		},
		{
			name:       "relative entries join base",
			cfg:        PathsConfig{OutputDir: "reports", LogsDir: "var/log"},
			wantOutput: filepath.Join(base, "reports"),
			wantLogs:   filepath.Join(base, "var", "log"),
		},
		{
			name:       "absolute entries kept",
			cfg:        PathsConfig{OutputDir: abs},
			wantOutput: abs,
			wantLogs:   filepath.Join(base, DefaultLogsDir),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaths(base, tt.cfg)
			assert.Equal(t, base, p.BaseDir)
			assert.Equal(t, tt.wantOutput, p.OutputDir)
			assert.Equal(t, tt.wantLogs, p.LogsDir)
		})
	}
}

func TestGetPaths(t *testing.T) {
	p, err := GetPaths(PathsConfig{})
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, DefaultOutputDir), p.OutputDir)
}

func TestEnsureDirectories(t *testing.T) {
	p := NewPaths(t.TempDir(), PathsConfig{OutputDir: "a/b", LogsDir: "c"})
	require.NoError(t, p.EnsureDirectories())

	assert.DirExists(t, p.OutputDir)
	assert.DirExists(t, p.LogsDir)
}

func TestPathHelperMethods(t *testing.T) {
	base := t.TempDir()
	p := NewPaths(base, PathsConfig{})

	assert.Equal(t, filepath.Join(p.OutputDir, "striking_distance.csv"), p.GetOutputPath("striking_distance.csv"))
	assert.Equal(t, filepath.Join("exports", "out.csv"), p.GetOutputPath(filepath.Join("exports", "out.csv")))
	abs := filepath.Join(base, "x.xlsx")
	assert.Equal(t, abs, p.GetOutputPath(abs))
	assert.Equal(t, filepath.Join(p.LogsDir, "app.log"), p.GetLogPath("app.log"))
}
