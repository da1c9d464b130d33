package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Call Plan"

// XLSXRenderer emits a single-sheet workbook: labels in column A, values in column B.
type XLSXRenderer struct{}

func (XLSXRenderer) Render(doc Document) (data []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxSheet, "B", "B", 90); err != nil {
		return nil, err
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	w := &xlsxWriter{f: f, row: 1}
	w.put("A", doc.Title, styles.title)
	for _, line := range doc.Subtitles {
		w.put("A", line, 0)
	}
	w.row++

	for _, section := range doc.Sections {
		w.put("A", section.Heading, styles.heading)
		pending := ""
		for _, block := range section.Blocks {
			switch block.Kind {
			case KindLabel:
				pending = block.Text
				continue
			case KindTip:
				text := block.Text
				if block.Icon != "" {
					text = block.Icon + " " + text
				}
				w.set("B", text, styles.tip)
			default:
				if pending != "" {
					w.set("A", pending, styles.label)
				}
				w.set("B", block.Text, styles.body)
			}
			pending = ""
			w.row++
		}
		w.row++
	}

	for _, line := range doc.Footer {
		w.put("A", line, styles.footer)
	}

	if w.err != nil {
		return nil, w.err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

type xlsxStyles struct {
	title, heading, label, body, tip, footer int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error
	wrap := &excelize.Alignment{WrapText: true, Vertical: "top"}

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 20}}); err != nil {
		return s, err
	}
	if s.heading, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return s, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}, Alignment: wrap}); err != nil {
		return s, err
	}
	if s.body, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 11}, Alignment: wrap}); err != nil {
		return s, err
	}
	if s.tip, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Size: 10}, Alignment: wrap}); err != nil {
		return s, err
	}
	if s.footer, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 9, Color: "666666"}}); err != nil {
		return s, err
	}
	return s, nil
}

// xlsxWriter keeps the current row and the first error, so the layout reads top to bottom.
type xlsxWriter struct {
	f   *excelize.File
	row int
	err error
}

// put writes a cell in the current row and moves to the next one.
func (w *xlsxWriter) put(col, value string, style int) {
	w.set(col, value, style)
	w.row++
}

func (w *xlsxWriter) set(col, value string, style int) {
	if w.err != nil {
		return
	}
	cell := fmt.Sprintf("%s%d", col, w.row)
	if err := w.f.SetCellValue(xlsxSheet, cell, value); err != nil {
		w.err = err
		return
	}
	if style > 0 {
		w.err = w.f.SetCellStyle(xlsxSheet, cell, cell, style)
	}
}
