package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"strikingdistance/internal/config"
	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/infrastructure"
	"strikingdistance/internal/striking"
)

// Writer exports run results in any supported format
type Writer struct {
	paths   *config.Paths
	options WriteOptions
	logger  *slog.Logger
}

// NewWriter creates a writer. Bare file names are placed under the
// configured output directory; a nil paths keeps every name as given.
func NewWriter(paths *config.Paths, options WriteOptions, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		paths:   paths,
		options: options,
		logger:  infrastructure.WithComponent(logger, "exporter"),
	}
}

// Write encodes res to w
func (w *Writer) Write(out io.Writer, format Format, res *striking.Result) error {
	switch format {
	case FormatCSV:
		return WriteCSV(out, res.Rows, w.options)
	case FormatXLSX:
		return WriteXLSX(out, res.Rows)
	case FormatJSON:
		return WriteJSON(out, res)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteFile writes res to filePath and returns the resolved path
func (w *Writer) WriteFile(filePath string, format Format, res *striking.Result) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing export file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.String("format", string(format)),
		slog.Int("record_count", len(res.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apierrors.NewStorageError("failed to create directory", err).WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", apierrors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}

	if err := w.Write(file, format, res); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", apierrors.NewStorageError("failed to close file", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

// DefaultFileName is the export name used when none is given
func DefaultFileName(format Format) string {
	return config.DefaultOutputName + format.Extension()
}

func (w *Writer) resolvePath(filePath string) string {
	if w.paths == nil {
		return filePath
	}
	return w.paths.GetOutputPath(filePath)
}
