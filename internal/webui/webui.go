// Package webui serves the upload form and report download surface: a form
// on "/", a canned template CSV, a generate endpoint that runs the report
// pipeline into a fresh run directory, and per-run artifact downloads.
package webui

import (
	"embed"
	"html/template"
	"net/http"

	"reportengine.dev/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

// WebUI carries the application dependencies into the HTTP handlers.
type WebUI struct {
	*app.Application
	templates *template.Template
}

// NewWebUI parses the embedded templates and returns the handler set.
func NewWebUI(application *app.Application) (*WebUI, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &WebUI{Application: application, templates: tmpl}, nil
}

// render writes an HTML page with the given status code. Template failures
// after the header is sent can only be logged.
func (ui *WebUI) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := ui.templates.ExecuteTemplate(w, name, data); err != nil {
		ui.Logger.Error("failed to render template", "template", name, "error", err)
	}
}
