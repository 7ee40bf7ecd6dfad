package pdfdoc

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBreaksAcrossPages(t *testing.T) {
	doc := New("TradeScout")
	doc.Title("Çok Sayfalı Liste")

	cols := []Column{{Title: "No", Width: 20}, {Title: "Firma", Width: 60}}
	rows := make([][]string, 120)
	for i := range rows {
		rows[i] = []string{fmt.Sprint(i + 1), "Örnek Şirket A.Ş."}
	}
	doc.Table(cols, rows)

	assert.Greater(t, doc.PageCount(), 1)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestText(t *testing.T) {
	doc := New("")
	// ş, ı and İ fold to ASCII; ö and ü survive as single cp1252 bytes.
	assert.Equal(t, "Isik Sirketi", doc.Text("Işık Şirketi"))
	assert.Equal(t, "\xf6\xfc", doc.Text("öü"))
}

func TestFit(t *testing.T) {
	doc := New("")
	doc.pdf.SetFont(font, "", 9)

	assert.Equal(t, "short", doc.fit("short", 50))

	long := doc.fit("a very long company name that will never fit", 20)
	assert.True(t, len(long) < 45)
	assert.Contains(t, long, "...")
	assert.LessOrEqual(t, doc.pdf.GetStringWidth(long), 20.0)
}
