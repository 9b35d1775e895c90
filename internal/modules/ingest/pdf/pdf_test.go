package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal single-font PDF with one page per entry in pages.
// An empty entry produces a page with an empty content stream.
func buildPDF(pages ...string) []byte {
	var objects []string
	n := len(pages)
	// 1: catalog, 2: pages, 3: font, then a page/content pair per page.
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		var stream string
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	text, err := ExtractText(buildPDF("Mitochondria", "", "Ribosomes"))
	require.NoError(t, err)

	first := strings.Index(text, "Mitochondria")
	last := strings.Index(text, "Ribosomes")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, last, first)
	// the blank middle page still contributes its separator
	assert.GreaterOrEqual(t, strings.Count(text[first:last], "\n"), 2)
}

func TestExtractTextNoText(t *testing.T) {
	_, err := ExtractText(buildPDF("", ""))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractTextUnreadable(t *testing.T) {
	_, err := ExtractText([]byte("definitely not a pdf"))
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = ExtractText(nil)
	assert.ErrorIs(t, err, ErrUnreadable)
}
