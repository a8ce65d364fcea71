// Package view renders the HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"mercadinho/internal/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Data is the payload every page template receives. Flash messages are
// already drained and split by severity.
type Data struct {
	Username string
	Success  []string
	Error    []string
	Warning  []string
	Items    []model.Item
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named page. Template execution failures after headers
// are written can only be logged.
func (r *Renderer) Render(w http.ResponseWriter, page string, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.tmpl.ExecuteTemplate(w, page, data); err != nil {
		log.Printf("rendering %s: %v", page, err)
	}
}

// StaticHandler serves the embedded static assets.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embed layout is fixed at build time
	}
	return http.FileServer(http.FS(sub))
}
