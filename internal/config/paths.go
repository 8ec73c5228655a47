package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved directories the application writes to
type Paths struct {
	BaseDir   string
	OutputDir string
	LogsDir   string
}

// GetPaths resolves the configured directories against the current working
// directory. Absolute entries are kept as they are.
func GetPaths(cfg PathsConfig) (*Paths, error) {
	base, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewPaths(base, cfg), nil
}

// NewPaths resolves cfg against base
func NewPaths(base string, cfg PathsConfig) *Paths {
	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}

	return &Paths{
		BaseDir:   base,
		OutputDir: resolve(cfg.OutputDir, DefaultOutputDir),
		LogsDir:   resolve(cfg.LogsDir, DefaultLogsDir),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetOutputPath returns where an export named filename is written. Paths
// that already carry a directory are returned unchanged.
func (p *Paths) GetOutputPath(filename string) string {
	if filepath.IsAbs(filename) || filepath.Dir(filename) != "." {
		return filename
	}
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs the resolved directories at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("output_dir", p.OutputDir),
		slog.String("logs_dir", p.LogsDir))
}
