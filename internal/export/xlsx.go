package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mlab-site/labpubs/internal/publication"
)

// Sheet names, one per category.
const (
	SheetInternational = "International"
	SheetDomestic      = "Domestic"
)

var xlsxHeader = []any{
	"Year", "Type", "Authors", "Title", "Journal",
	"Volume", "Issue", "Pages", "Date", "DOI", "URL", "ID",
}

// WriteXLSX writes pubs as a workbook with one sheet per category, keeping
// the input order within each sheet.
func WriteXLSX(w io.Writer, pubs []publication.Publication) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetInternational); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetDomestic); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	rows := map[string]int{SheetInternational: 1, SheetDomestic: 1}
	for sheet := range rows {
		if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freezing header: %w", err)
		}
	}

	for _, p := range pubs {
		sheet := SheetInternational
		if p.Category == publication.Domestic {
			sheet = SheetDomestic
		}
		rows[sheet]++
		cell, err := excelize.CoordinatesToCellName(1, rows[sheet])
		if err != nil {
			return err
		}

		var year any = p.Year
		if p.Year == 0 {
			year = ""
		}
		row := []any{
			year, string(p.SubCategory), p.Authors, p.Title, p.Journal,
			p.Volume, p.Issue, p.Pages, p.DateDisplay, p.DOI, p.URL, p.ID,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s: %w", p.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
