package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"strikingdistance/internal/infrastructure"
	"strikingdistance/internal/striking"
)

const utf8BOM = "\ufeff"

// ErrUnsupportedFormat is returned for inputs that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Paths locates the three exports on disk.
type Paths struct {
	Queries         string `json:"queries" yaml:"queries"`
	Keywords        string `json:"keywords" yaml:"keywords"`
	Cannibalisation string `json:"cannibalisation" yaml:"cannibalisation"`
}

// LoadCSV reads a CSV export into a named table. The first row is the
// header; a leading byte order mark is dropped and ragged rows are kept.
func LoadCSV(r io.Reader, table string) (*striking.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s csv: %w", table, err)
	}
	return fromRows(table, rows), nil
}

// LoadXLSX reads the first sheet of a workbook into a named table.
func LoadXLSX(r io.Reader, table string) (*striking.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s workbook: %w", table, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return striking.NewTable(table, nil, nil), nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheets[0], table, err)
	}
	return fromRows(table, rows), nil
}

// LoadReader picks the decoder from the extension of filename.
func LoadReader(r io.Reader, filename, table string) (*striking.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return LoadCSV(r, table)
	case ".xlsx", ".xlsm":
		return LoadXLSX(r, table)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// LoadFile opens path and loads it as the named table.
func LoadFile(path, table string) (*striking.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", table, err)
	}
	defer f.Close()

	return LoadReader(f, path, table)
}

// Loader loads the three exports of a run.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: infrastructure.WithComponent(logger, "loader")}
}

// LoadInputs reads all three files concurrently. The first failure cancels
// the remaining reads.
func (l *Loader) LoadInputs(ctx context.Context, paths Paths) (striking.Inputs, error) {
	var in striking.Inputs

	g, ctx := errgroup.WithContext(ctx)
	load := func(dst **striking.Table, path, table string) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := LoadFile(path, table)
			if err != nil {
				return err
			}
			l.logger.DebugContext(ctx, "input loaded",
				slog.String("table", table),
				slog.String("path", path),
				slog.Int("rows", t.Len()))
			*dst = t
			return nil
		})
	}

	load(&in.Queries, paths.Queries, striking.TableQueries)
	load(&in.Keywords, paths.Keywords, striking.TableKeywords)
	load(&in.Cannibalisation, paths.Cannibalisation, striking.TableCannibalisation)

	if err := g.Wait(); err != nil {
		return striking.Inputs{}, err
	}
	return in, nil
}

func fromRows(table string, rows [][]string) *striking.Table {
	if len(rows) == 0 {
		return striking.NewTable(table, nil, nil)
	}

	// Header cells must match the column names exactly; only the BOM goes
	header := append([]string(nil), rows[0]...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return striking.NewTable(table, header, rows[1:])
}
