// Package view renders the service's HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/sitecraft/sitecraft-go/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	PageIndex   = "index"
	PagePreview = "preview"
	PageList    = "list"
)

// ListData is the data passed to the list page.
type ListData struct {
	Sites []model.Site
}

// Renderer holds parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses all pages from the embedded templates.
func New() (*Renderer, error) {
	return NewFromFS(templatesFS)
}

// NewFromFS parses pages from fsys, which must contain templates/base.html
// and one templates/<page>.html per page.
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, page := range []string{PageIndex, PagePreview, PageList} {
		tmpl, err := template.New(page).Funcs(templateFuncs()).ParseFS(fsys,
			"templates/base.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}

	return r, nil
}

// Render executes page into w. Output is buffered so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("template %s not found", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04 UTC")
		},
	}
}
