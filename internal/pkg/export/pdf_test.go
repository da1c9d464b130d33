package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRendererProducesDocument(t *testing.T) {
	data, err := PDFRenderer{}.Render(Compose(samplePlan()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data[len(data)-16:]), "%%EOF")
}

func TestPDFLayoutSinglePage(t *testing.T) {
	l, err := PDFRenderer{}.layout(Compose(samplePlan()))
	require.NoError(t, err)
	assert.Equal(t, 1, l.pdf.PageCount())

	w, h := l.pdf.GetPageSize()
	assert.InDelta(t, 210.0, w, 0.5)
	assert.InDelta(t, 297.0, h, 0.5)
}

func TestPDFLayoutMatchesDocumentOrder(t *testing.T) {
	doc := Compose(samplePlan())
	l, err := PDFRenderer{}.layout(doc)
	require.NoError(t, err)

	emitted := make([]string, 0, len(l.lines))
	for _, line := range l.lines {
		emitted = append(emitted, line.text)
	}
	joined := strings.Join(emitted, " ")

	last := -1
	for _, item := range flatten(doc) {
		want := strings.Join(strings.Fields(item), " ")
		idx := strings.Index(joined[last+1:], want)
		require.GreaterOrEqual(t, idx, 0, "missing %q", item)
		last += 1 + idx
	}
	assert.Equal(t, 6, strings.Count(joined, NotAvailable))
}

func TestPDFLayoutWrapsWithinContentWidth(t *testing.T) {
	long := strings.Repeat("implication ", 40)
	p := samplePlan()
	p.SpinI = &long

	l, err := PDFRenderer{}.layout(Compose(p))
	require.NoError(t, err)

	for _, line := range l.lines {
		limit := wrapLimit(l.contentWidth, line.size)
		if len([]rune(line.text)) > limit {
			assert.NotContains(t, line.text, " ")
		}
	}
}

func TestPDFLayoutPaginates(t *testing.T) {
	huge := strings.Repeat("The customer described every step of the current process in detail. ", 120)
	p := samplePlan()
	p.Storytelling = &huge
	p.Response = &huge

	l, err := PDFRenderer{}.layout(Compose(p))
	require.NoError(t, err)
	assert.Greater(t, l.pdf.PageCount(), 2)

	pages := map[int]bool{}
	for _, line := range l.lines {
		pages[line.page] = true
	}
	assert.Len(t, pages, l.pdf.PageCount())

	last := l.lines[len(l.lines)-1]
	assert.Equal(t, "Supporting Healthcare Representatives", last.text)
	assert.Equal(t, l.pdf.PageCount(), last.page)
}

func TestPDFRendererMissingFontFails(t *testing.T) {
	_, err := PDFRenderer{FontPath: "/nonexistent/font.ttf"}.Render(Compose(samplePlan()))
	assert.Error(t, err)
}

func TestWrapLimitAndLineAdvance(t *testing.T) {
	assert.Equal(t, 56, wrapLimit(170, 10))
	assert.Equal(t, 47, wrapLimit(170, 12))
	assert.Equal(t, 35, wrapLimit(170, 16))
	assert.InDelta(t, 7.0, lineAdvance(10), 1e-9)
	assert.InDelta(t, 12.0, lineAdvance(20), 1e-9)
}
