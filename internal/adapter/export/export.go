// Package export turns a rendered document into a standalone, print-ready
// HTML file. The file embeds all styling, so a browser's print-to-PDF is
// the only step left between it and a deliverable.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"time"

	"github.com/dlriva/proposalforge/internal/domain/render"
)

//go:embed templates/proposal.tmpl
var templateFS embed.FS

var proposalTmpl = template.Must(template.New("proposal.tmpl").Funcs(template.FuncMap{
	// Rich text bodies arrive pre-sanitized from the editor and render as-is.
	"raw": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(templateFS, "templates/proposal.tmpl"))

// File is a finished export artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// HTML renders doc into a self-contained HTML file named after the client
// and the export date.
func HTML(doc render.Document, now time.Time) (*File, error) {
	var buf bytes.Buffer
	if err := proposalTmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render export template: %w", err)
	}
	return &File{
		Name:        Filename(doc.ClientName, now),
		ContentType: "text/html; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeRe     = regexp.MustCompile(`[^\p{L}\p{N}_-]`)
)

// Filename builds the download name for an export: the client name with
// whitespace collapsed to underscores, plus the export date.
func Filename(clientName string, now time.Time) string {
	name := whitespaceRe.ReplaceAllString(clientName, "_")
	name = unsafeRe.ReplaceAllString(name, "")
	if name == "" {
		name = "Client"
	}
	return fmt.Sprintf("Proposta_%s_%s.html", name, now.Format("2006-01-02"))
}
