package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

//go:embed templates/*.md
var templates embed.FS

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders the report as a GitHub flavoured markdown document.
func Markdown(report model.Report) (string, error) {
	content, err := fs.ReadFile(templates, "templates/report.md")
	if err != nil {
		return "", fmt.Errorf("failed to read report template: %w", err)
	}

	f := newFormatter(report.Currency)
	funcs := texttemplate.FuncMap{
		"money": f.Money,
		"price": f.Price,
		"pct":   formatPct,
		"rate":  formatRate,
		"qty":   formatQty,
		"cell":  escapeCell,
		"date":  formatDate,
		"day":   formatDay,
	}

	tmpl, err := texttemplate.New("report").Funcs(funcs).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, report); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return b.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>{{ .Title }}</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; color: #1f1f1f; margin: 32px; }
    h1 { font-size: 24px; margin-bottom: 4px; }
    h2 { font-size: 18px; margin-top: 28px; border-bottom: 1px solid #e5e5e5; padding-bottom: 4px; }
    table { border-collapse: collapse; width: 100%; font-size: 12px; }
    th, td { padding: 6px 8px; border-bottom: 1px solid #f0f0f0; }
    th { background: #f7f7f7; }
    em { color: #6f6f6f; }
  </style>
</head>
<body>
{{ .Body }}
</body>
</html>
`))

// HTML renders the report as a standalone HTML page.
func HTML(report model.Report) ([]byte, error) {
	md, err := Markdown(report)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("failed to convert report markdown: %w", err)
	}

	var out bytes.Buffer
	err = pageTemplate.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: report.Title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report page: %w", err)
	}
	return out.Bytes(), nil
}
