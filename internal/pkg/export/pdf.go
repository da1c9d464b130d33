package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres, A4 portrait.
const (
	pdfMargin       = 20.0
	pdfFooterOffset = 30.0
	// Approximate glyph width per point of font size, in mm.
	pdfCharWidthFactor = 0.3
	pdfLineFactor      = 0.5
	pdfLineSpacing     = 2.0
)

// Font sizes in points.
const (
	sizeTitle    = 20
	sizeSubtitle = 14
	sizeTagline  = 12
	sizeHeading  = 16
	sizeLabel    = 12
	sizeBody     = 12
	sizeDetail   = 10
	sizeTip      = 10
	sizeFooter   = 10
)

const utf8FontFamily = "planfont"

// PDFRenderer emits an A4 document with word-wrapped, paginated text.
type PDFRenderer struct {
	// FontPath optionally points at a UTF-8 TrueType font. Without it the core
	// Helvetica font is used and text outside cp1252 cannot be shown.
	FontPath string
}

func (r PDFRenderer) Render(doc Document) ([]byte, error) {
	layout, err := r.layout(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := layout.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfLine struct {
	page int
	size float64
	text string
}

type pdfLayout struct {
	pdf          *fpdf.Fpdf
	family       string
	translate    func(string) string
	pageWidth    float64
	pageHeight   float64
	contentWidth float64
	y            float64
	lines        []pdfLine
}

func (r PDFRenderer) layout(doc Document) (*pdfLayout, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(toolName, true)

	l := &pdfLayout{pdf: pdf, family: "Helvetica", translate: func(s string) string { return s }}
	if r.FontPath != "" {
		pdf.AddUTF8Font(utf8FontFamily, "", r.FontPath)
		pdf.AddUTF8Font(utf8FontFamily, "B", r.FontPath)
		l.family = utf8FontFamily
	} else {
		l.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	l.pageWidth, l.pageHeight = pdf.GetPageSize()
	l.contentWidth = l.pageWidth - 2*pdfMargin

	pdf.AddPage()
	l.y = pdfMargin

	l.text(doc.Title, sizeTitle, true)
	l.y += 10
	for i, line := range doc.Subtitles {
		size := float64(sizeTagline)
		if i == 0 {
			size = sizeSubtitle
		}
		l.text(line, size, false)
	}
	l.y += 15

	pdf.SetDrawColor(100, 100, 100)
	pdf.Line(pdfMargin, l.y, l.pageWidth-pdfMargin, l.y)
	l.y += 10

	for _, section := range doc.Sections {
		l.section(section)
	}

	l.footer(doc.Footer)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	return l, nil
}

func (l *pdfLayout) section(s Section) {
	l.text(s.Heading, sizeHeading, true)
	l.y += 5

	afterLabel := false
	for i, block := range s.Blocks {
		switch block.Kind {
		case KindLabel:
			l.text(block.Text, sizeLabel, true)
			afterLabel = true
			continue
		case KindTip:
			l.text(block.Text, sizeTip, false)
		default:
			size := float64(sizeBody)
			if afterLabel {
				size = sizeDetail
			}
			l.text(block.Text, size, false)
		}
		afterLabel = false
		if i < len(s.Blocks)-1 {
			l.y += 5
		}
	}
	l.y += 10
}

// footer draws the separator rule near the bottom of the last page and the
// footer lines beneath it, starting a new page if the body already reaches it.
func (l *pdfLayout) footer(lines []string) {
	ruleY := l.pageHeight - pdfFooterOffset
	if l.y > ruleY {
		l.pdf.AddPage()
		l.y = pdfMargin
	}
	l.pdf.Line(pdfMargin, ruleY, l.pageWidth-pdfMargin, ruleY)

	y := ruleY + 6
	l.pdf.SetFont(l.family, "", sizeFooter)
	for _, line := range lines {
		l.pdf.Text(pdfMargin, y, l.translate(line))
		l.lines = append(l.lines, pdfLine{page: l.pdf.PageNo(), size: sizeFooter, text: line})
		y += lineAdvance(sizeFooter)
	}
}

// text wraps s to the content width for the given size and emits it line by
// line, breaking pages when the cursor passes the bottom margin.
func (l *pdfLayout) text(s string, size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	l.pdf.SetFont(l.family, style, size)

	for _, line := range WrapParagraphs(s, wrapLimit(l.contentWidth, size)) {
		if l.y > l.pageHeight-pdfMargin {
			l.pdf.AddPage()
			l.y = pdfMargin
		}
		l.pdf.Text(pdfMargin, l.y, l.translate(line))
		l.lines = append(l.lines, pdfLine{page: l.pdf.PageNo(), size: size, text: line})
		l.y += lineAdvance(size)
	}
}

func wrapLimit(contentWidth, size float64) int {
	return int(math.Floor(contentWidth / (size * pdfCharWidthFactor)))
}

func lineAdvance(size float64) float64 {
	return size*pdfLineFactor + pdfLineSpacing
}
