package report

import (
	"archive/zip"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/pdfdoc"
)

const (
	footerText   = "TradeScout - Gizli ve Özel"
	summaryTopN  = 10
	dateFormatTR = "02.01.2006"
)

// Investor writes the seven-section investor report for d.
func Investor(w io.Writer, d Data) error {
	doc := header()

	doc.Section("1. Firma Bilgileri")
	doc.Field("Firma Adı", d.CompanyName)
	doc.Field("Ülke", d.Country)
	doc.Field("Web Sitesi", orDefault(d.Website, notSpecified))
	doc.Field("Kuruluş Yılı", orDefault(d.FoundingYear, notSpecified))
	doc.Field("Çalışan Sayısı", orDefault(d.EmployeeCount, notSpecified))

	doc.Section("2. Sektörel ve Üretim Detayları")
	doc.Field("Sektör", d.Sector)
	doc.Field("Ana Ürünler", orDefault(d.MainProducts, notSpecified))
	doc.Field("Üretim Kapasitesi", orDefault(d.ProductionCapacity, notSpecified))
	doc.Field("Sertifikalar", orDefault(d.Certificates, notSpecified))
	doc.Field("Teknoloji Düzeyi", orDefault(d.TechnologyLevel, notSpecified))

	doc.Section("3. İhracat ve Pazar Bilgisi")
	doc.Field("İhracat Durumu", yesNo(d.ExportStatus))
	doc.Field("İhraç Edilen Ülkeler", orDefault(d.ExportCountries, notSpecified))
	doc.Field("İhracat Oranı", orDefault(d.ExportRatio, notSpecified))
	doc.Field("Distribütör Arayışı", yesNo(d.SeekingDistributor))

	doc.Section("4. İş Birliği ve İlgi Durumu")
	doc.Field("İş birliğine açık mı?", yesNo(d.OpenToPartnership))
	doc.Field("İş birliği tipi", orDefault(d.PartnershipType, notSpecified))
	doc.Field("Mevcut iş ortakları", orDefault(d.ExistingPartners, "Yok"))
	doc.Field("Geri dönüş alındı mı?", yesNo(d.ResponseReceived))

	doc.Section("5. Aksiyon Notları")
	doc.Field("İletişim kuruldu mu?", yesNo(d.ContactEstablished))
	doc.Field("Son Aksiyon", d.LastAction)
	doc.Field("Takip Durumu", d.FollowUpStatus)

	doc.Section("6. Rapor Özeti")
	doc.Paragraph(Summary(d))

	doc.Section("7. Ek Bilgiler")
	doc.Field("Formu dolduran kişi", orDefault(d.ReporterName, "Sistem Kullanıcısı"))
	doc.Field("Rapor Tarihi", d.ReportDate.Format(dateFormatTR))

	return doc.Write(w)
}

// SummaryReport writes totals and the top country and sector distributions
// over records.
func SummaryReport(w io.Writer, records []core.Record) error {
	doc := header()

	interested, high, following := 0, 0, 0
	countries := map[string]int{}
	sectors := map[string]int{}
	for _, r := range records {
		if r.InterestStatus == core.InterestYes {
			interested++
		}
		if r.Priority == core.PriorityHigh {
			high++
		}
		if r.FollowUpStatus != core.FollowUpNone {
			following++
		}
		countries[r.Country]++
		sectors[r.Sector]++
	}

	doc.Section("Genel İstatistikler")
	doc.Field("Toplam Firma", strconv.Itoa(len(records)))
	doc.Field("İlgili Firmalar", strconv.Itoa(interested))
	doc.Field("Yüksek Öncelik", strconv.Itoa(high))
	doc.Field("Takipte Olanlar", strconv.Itoa(following))

	doc.Section(fmt.Sprintf("Ülke Dağılımı (Top %d)", summaryTopN))
	doc.Table(distributionColumns("Ülke"), distributionRows(core.Top(countries, summaryTopN)))

	doc.Section(fmt.Sprintf("Sektör Dağılımı (Top %d)", summaryTopN))
	doc.Table(distributionColumns("Sektör"), distributionRows(core.Top(sectors, summaryTopN)))

	return doc.Write(w)
}

// Bulk writes a zip archive holding one investor report per record. Each
// report uses the record alone, dated day.
func Bulk(w io.Writer, records []core.Record, day time.Time) error {
	zw := zip.NewWriter(w)
	used := make(map[string]int, len(records))

	for _, r := range records {
		base := InvestorFilename(r.CompanyName, day)
		used[base]++
		name := base
		if n := used[base]; n > 1 {
			name = fmt.Sprintf("%s_%d.pdf", strings.TrimSuffix(base, ".pdf"), n)
		}

		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		if err := Investor(entry, FromRecord(r, Extra{ReportDate: day})); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

func header() *pdfdoc.Document {
	doc := pdfdoc.New(footerText)
	doc.Title("YATIRIMCI RAPORU")
	doc.Subtitle("TradeScout - Müşteri Araştırma Platformu")
	doc.Gap(2)
	return doc
}

func distributionColumns(name string) []pdfdoc.Column {
	return []pdfdoc.Column{{Title: name, Width: 120}, {Title: "Firma", Width: 60}}
}

func distributionRows(counts []core.Count) [][]string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Name, strconv.Itoa(c.Count)}
	}
	return rows
}
