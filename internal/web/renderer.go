package web

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
)

// Renderer maps a logical view name and a context map to an HTML document.
type Renderer interface {
	Render(view string, data map[string]interface{}) (string, error)
}

// TemplateRenderer renders views with html/template, resolving view names
// against the files parsed from a single directory.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates in %s: %w", dir, err)
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(view string, data map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, view, data); err != nil {
		return "", fmt.Errorf("render view %s: %w", view, err)
	}
	return buf.String(), nil
}
