// Package rendering renders the URL templates of synced apps
package rendering

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ErrEmptyURL is returned when a template renders to an empty string
var ErrEmptyURL = errors.New("template rendered an empty url")

// DefaultURLTemplate serves an app from a path named after it
const DefaultURLTemplate = "/{{ .Name }}/"

// AppVariables are the values available to a URL template
type AppVariables struct {
	// Name is the app name, e.g. "@signalk/freeboard-sk"
	Name string
	// Slug is the name without scope, e.g. "freeboard-sk"
	Slug string
}

// TemplateEngine provides template rendering with Sprig functions
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses content once with Sprig functions
func NewTemplateEngine(content string) (*TemplateEngine, error) {
	if content == "" {
		content = DefaultURLTemplate
	}

	tmpl, err := template.New("url").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &TemplateEngine{tmpl: tmpl}, nil
}

// Render renders the URL for the app called name
func (t *TemplateEngine) Render(name string) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, BuildVariables(name)); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	url := strings.TrimSpace(buf.String())
	if url == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyURL, name)
	}

	return url, nil
}

// BuildVariables builds template variables for an app name
func BuildVariables(name string) AppVariables {
	slug := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		slug = name[i+1:]
	}

	return AppVariables{Name: name, Slug: slug}
}
