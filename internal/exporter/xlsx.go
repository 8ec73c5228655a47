package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"strikingdistance/internal/striking"
	"strikingdistance/pkg/contracts/domain"
)

// SheetName is the worksheet the result table is written to
const SheetName = "Striking Distance"

// WriteXLSX writes rows as a single-sheet workbook. Numeric columns are
// stored as numbers; the z-score carries its rounded value.
func WriteXLSX(w io.Writer, rows []domain.OpportunityRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(striking.OutputHeader))
	for i, h := range striking.OutputHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Keyword,
			row.LandingPage,
			row.AveragePosition,
			row.Volume,
			row.Difficulty,
			row.OpportunityZScore,
			row.Intents,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
