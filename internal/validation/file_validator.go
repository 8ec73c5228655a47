package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"strikingdistance/internal/dataprocessing"
	"strikingdistance/internal/infrastructure"
	"strikingdistance/internal/striking"
)

// ErrInvalidInput is wrapped by every input file rejection
var ErrInvalidInput = errors.New("invalid input file")

// inputExtensions lists what the loader can decode
var inputExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xlsx": true,
	".xlsm": true,
}

// FileValidator pre-checks the files of a command line run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: infrastructure.WithComponent(logger, "file_validator"),
	}
}

// ValidateInputs checks all three exports and reports every bad one at once
func (v *FileValidator) ValidateInputs(paths dataprocessing.Paths) error {
	var errs []error
	for _, in := range []struct{ table, path string }{
		{striking.TableQueries, paths.Queries},
		{striking.TableKeywords, paths.Keywords},
		{striking.TableCannibalisation, paths.Cannibalisation},
	} {
		if in.path == "" {
			errs = append(errs, fmt.Errorf("%w: no path given for %s", ErrInvalidInput, in.table))
			continue
		}
		if err := v.ValidateInputFile(in.path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", in.table, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateInputFile checks that path is a readable CSV or workbook export
func (v *FileValidator) ValidateInputFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !inputExtensions[ext] {
		v.logger.Error("Unsupported input extension",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("%w: %s has unsupported extension %q", ErrInvalidInput, path, ext)
	}

	// Office lock files share the workbook extension
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Rejecting temporary Excel file",
			slog.String("file", path))
		return fmt.Errorf("%w: %s is a temporary Excel file", ErrInvalidInput, path)
	}

	return v.ValidateFile(path)
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("%w: %s does not exist", ErrInvalidInput, path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%w: %s is a directory, not a file", ErrInvalidInput, path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	tmp.Close()
	os.Remove(tmp.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateOutputFile checks the parent directory of an export path. Bare
// names are resolved by the exporter and skip the check.
func (v *FileValidator) ValidateOutputFile(path string) error {
	if path == "" || filepath.Dir(path) == "." {
		return nil
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output path %s is a directory", path)
	}
	return v.ValidateOutputDirectory(filepath.Dir(path))
}
