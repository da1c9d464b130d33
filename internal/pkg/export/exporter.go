package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ManuelReschke/CallPlanner/app/models"
)

// Format identifies an export adapter; its value is the file extension.
type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

const (
	fileNamePrefix      = "Strategic_Call_Plan_"
	fileNamePlaceholder = "Plan"
)

// ErrUnsupportedFormat is returned for formats without a renderer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Renderer turns a composed document into file bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)
}

// File is a finished export, ready to be sent as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// RenderError reports a failure while producing an export. No partial output
// accompanies it.
type RenderError struct {
	Format Format
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Options configures the built-in renderers.
type Options struct {
	PDFFontPath string
}

// Exporter renders plans through the registered adapters.
type Exporter struct {
	renderers map[Format]Renderer
	formats   []Format
}

// NewExporter registers the text, PDF and XLSX renderers.
func NewExporter(opts Options) *Exporter {
	e := &Exporter{renderers: make(map[Format]Renderer)}
	e.Register(FormatText, TextRenderer{})
	e.Register(FormatPDF, PDFRenderer{FontPath: opts.PDFFontPath})
	e.Register(FormatXLSX, XLSXRenderer{})
	return e
}

// Register adds or replaces the renderer for a format.
func (e *Exporter) Register(f Format, r Renderer) {
	if _, ok := e.renderers[f]; !ok {
		e.formats = append(e.formats, f)
	}
	e.renderers[f] = r
}

// Formats lists registered formats in registration order.
func (e *Exporter) Formats() []Format {
	return append([]Format(nil), e.formats...)
}

// Supports reports whether a renderer is registered for f.
func (e *Exporter) Supports(f Format) bool {
	_, ok := e.renderers[f]
	return ok
}

// Export renders p in the given format. Any failure, including a panic inside
// a renderer, is returned as a *RenderError.
func (e *Exporter) Export(p *models.Plan, f Format) (file *File, err error) {
	r, ok := e.renderers[f]
	if !ok {
		return nil, &RenderError{Format: f, Err: ErrUnsupportedFormat}
	}

	defer func() {
		if rec := recover(); rec != nil {
			file = nil
			err = &RenderError{Format: f, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	doc := Compose(p)
	data, err := r.Render(doc)
	if err != nil {
		return nil, &RenderError{Format: f, Err: err}
	}
	return &File{
		Name:        FileName(doc.ClientName, f),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	unsafeNameChars = strings.NewReplacer(`/`, "", `\`, "", `"`, "")
)

// FileName builds the attachment name for a client: whitespace runs become
// underscores and an empty name falls back to a placeholder.
func FileName(clientName string, f Format) string {
	name := strings.TrimSpace(unsafeNameChars.Replace(clientName))
	name = whitespaceRun.ReplaceAllString(name, "_")
	if name == "" {
		name = fileNamePlaceholder
	}
	return fileNamePrefix + name + "." + string(f)
}
