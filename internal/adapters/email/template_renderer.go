package email

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"
	"time"

	"volunteerhub/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

var funcs = map[string]any{
	"date":  func(t time.Time) string { return t.UTC().Format("Mon Jan 2, 2006") },
	"clock": func(t time.Time) string { return t.UTC().Format("15:04 MST") },
}

// Each notification is three files: <name>_subject.txt, <name>.txt and <name>.html.
var (
	textTemplates = texttemplate.Must(texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
)

type executor interface {
	Execute(w io.Writer, data any) error
}

type templateRenderer struct{}

// NewTemplateRenderer returns an EmailTemplateRenderer backed by the embedded notification templates.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return templateRenderer{}
}

func (templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = execute(lookupText(name+"_subject.txt"), data); err != nil {
		return "", "", "", fmt.Errorf("%s subject: %w", name, err)
	}
	if htmlBody, err = execute(lookupHTML(name+".html"), data); err != nil {
		return "", "", "", fmt.Errorf("%s html body: %w", name, err)
	}
	if textBody, err = execute(lookupText(name+".txt"), data); err != nil {
		return "", "", "", fmt.Errorf("%s text body: %w", name, err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

// The lookups return a nil interface, not a typed nil, for missing files.
func lookupText(file string) executor {
	if t := textTemplates.Lookup(file); t != nil {
		return t
	}
	return nil
}

func lookupHTML(file string) executor {
	if t := htmlTemplates.Lookup(file); t != nil {
		return t
	}
	return nil
}

func execute(t executor, data any) (string, error) {
	if t == nil {
		return "", fmt.Errorf("template not found")
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
