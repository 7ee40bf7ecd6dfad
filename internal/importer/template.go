package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	templateSheet     = "Müşteri Şablonu"
	instructionsSheet = "Talimatlar"
)

var templateSample = []string{
	"Saudi Arabia",
	"Örnek Şirket A.Ş.",
	"https://www.ornek.com",
	"Construction",
	"Evet",
	"Yüksek",
	"İlk görüşme yapıldı, teknik detaylar paylaşıldı",
	"1. Takip",
}

var templateInstructions = []string{
	"KULLANIM TALİMATLARI:",
	"1. Bu şablonu doldurun",
	"2. İlgi Durumu: Evet/Hayır",
	"3. Öncelik: Yüksek/Orta/Düşük",
	"4. Takip Durumu: 1. Takip/2. Takip/Yok",
	"5. Dosyayı kaydedin ve içe aktarın",
}

// TemplateFilename is the download name for a template.
func TemplateFilename(format Format) string {
	return "tradescout_musteri_sablonu." + string(format)
}

// WriteTemplate writes an import template with the header row and one sample
// row. Only xlsx and csv templates exist.
func WriteTemplate(w io.Writer, format Format) error {
	switch format {
	case FormatXLSX:
		return writeXLSXTemplate(w)
	case FormatCSV:
		return writeCSVTemplate(w)
	}
	return fmt.Errorf("%w: no %q template", ErrUnsupportedFormat, format)
}

func writeCSVTemplate(w io.Writer) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	_ = cw.Write(Headers())
	_ = cw.Write(templateSample)
	cw.Flush()
	return cw.Error()
}

func writeXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	for rowIdx, values := range [][]string{Headers(), templateSample} {
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(templateSheet, cell, v); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	if err := f.SetRowStyle(templateSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(templateSheet, "A", "H", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	for i, line := range templateInstructions {
		if err := f.SetCellValue(instructionsSheet, fmt.Sprintf("A%d", i+1), line); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(instructionsSheet, "A", "A", 50); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
