package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/importer"
)

var exportTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func sampleRecords() []core.Record {
	return []core.Record{
		{
			ID: "a", Country: "Saudi Arabia", CompanyName: "Örnek Şirket A.Ş.", Website: "https://ornek.com",
			Sector: "Construction", InterestStatus: core.InterestYes, Priority: core.PriorityHigh,
			ActionNote: "İlk görüşme yapıldı", FollowUpStatus: core.FollowUpFirst,
			CreatedAt: time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
		},
		{
			ID: "b", Country: "Germany", CompanyName: "Acme, GmbH", Sector: "Machinery",
			InterestStatus: core.InterestNo, Priority: core.PriorityLow,
			ActionNote: "catalogue \"sent\" by mail", FollowUpStatus: core.FollowUpNone,
			CreatedAt: time.Date(2024, 4, 20, 8, 0, 0, 0, time.UTC),
		},
	}
}

func inputs(records []core.Record) []core.Input {
	out := make([]core.Input, len(records))
	for i, r := range records {
		out[i] = r.Input()
	}
	return out
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "customers_2024-06-01.xlsx", Filename(FormatXLSX, exportTime))
	assert.Equal(t, "customers_2024-06-01.pdf", Filename(FormatPDF, exportTime))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"xlsx", FormatXLSX, false},
		{".CSV", FormatCSV, false},
		{"excel", FormatXLSX, false},
		{"pdf", FormatPDF, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"Saudi Arabia", "Örnek Şirket A.Ş.", "https://ornek.com", "Construction",
		"Evet", "Yüksek", "İlk görüşme yapıldı", "1. Takip", "03.05.2024",
	}, rows[1])

	width, err := f.GetColWidth(sheetName, "G")
	require.NoError(t, err)
	assert.Equal(t, 40.0, width)

	panes, err := f.GetPanes(sheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Acme, GmbH", rows[2][1])
	assert.Equal(t, `catalogue "sent" by mail`, rows[2][6])
	assert.Equal(t, "Yok", rows[2][7])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords(), exportTime))

	var got Backup
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, BackupVersion, got.Version)
	assert.True(t, exportTime.Equal(got.ExportDate))
	assert.Equal(t, sampleRecords(), got.Customers)
}

func TestEmptyExportsHaveHeadersOnly(t *testing.T) {
	var xlsx bytes.Buffer
	require.NoError(t, WriteXLSX(&xlsx, nil))
	f, err := excelize.OpenReader(&xlsx)
	require.NoError(t, err)
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.NoError(t, f.Close())

	var csvBuf bytes.Buffer
	require.NoError(t, WriteCSV(&csvBuf, nil))
	assert.Equal(t, 1, bytes.Count(csvBuf.Bytes(), []byte("\n")))

	var jsonBuf bytes.Buffer
	require.NoError(t, WriteJSON(&jsonBuf, nil, exportTime))
	assert.Contains(t, jsonBuf.String(), `"customers": []`)

	var pdf bytes.Buffer
	require.NoError(t, WriteListPDF(&pdf, nil, exportTime))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))
}

func TestExportImportRoundTrip(t *testing.T) {
	records := sampleRecords()

	for _, format := range []struct {
		export Format
		parse  importer.Format
	}{
		{FormatXLSX, importer.FormatXLSX},
		{FormatCSV, importer.FormatCSV},
		{FormatJSON, importer.FormatJSON},
	} {
		t.Run(string(format.export), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, format.export, records, exportTime))

			res, err := importer.Parse(format.parse, &buf)
			require.NoError(t, err)
			assert.Empty(t, res.Errors)
			assert.Equal(t, inputs(records), res.Valid)
		})
	}
}

func TestPDFs(t *testing.T) {
	records := sampleRecords()
	for i := 0; i < 80; i++ {
		records = append(records, records[i%2])
	}

	var list bytes.Buffer
	require.NoError(t, Write(&list, FormatPDF, records, exportTime))
	assert.True(t, bytes.HasPrefix(list.Bytes(), []byte("%PDF-")))

	var stats bytes.Buffer
	require.NoError(t, WriteStatsPDF(&stats, core.Summarize(records, exportTime), exportTime))
	assert.True(t, bytes.HasPrefix(stats.Bytes(), []byte("%PDF-")))
}

func TestWriteUnsupported(t *testing.T) {
	err := Write(&bytes.Buffer{}, "docx", nil, exportTime)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0%", percent(0, 0))
	assert.Equal(t, "33%", percent(1, 3))
	assert.Equal(t, "100%", percent(4, 4))
}
