package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded template set. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("ui").Funcs(template.FuncMap{
		"classes": Classes,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse ui templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Fragment renders the named template into an HTML fragment
func (r *Renderer) Fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	// the fragment is html/template output, already escaped
	return template.HTML(buf.String()), nil
}

// RenderHome writes the complete landing page. Nothing is written when rendering fails.
func (r *Renderer) RenderHome(w io.Writer, page HomePage) error {
	header, err := r.Fragment("app_header", page)
	if err != nil {
		return err
	}
	content, err := r.Fragment("home_content", page)
	if err != nil {
		return err
	}
	footer, err := r.Fragment("app_footer", page)
	if err != nil {
		return err
	}

	layout := MainLayout{Header: header, Content: content, Footer: footer}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "document", struct {
		Page   HomePage
		Layout MainLayout
	}{page, layout}); err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	_, err = buf.WriteTo(w)
	return err
}
