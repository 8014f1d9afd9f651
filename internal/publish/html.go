package publish

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in content blocks is escaped, never passed through.
		html.WithHardWraps(),
	),
)

// RenderHTML converts a Markdown report to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .25rem .6rem; }
ul { list-style: none; padding-left: 1rem; }
code { color: #666; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderHTMLDocument wraps the rendered report in a standalone page.
func RenderHTMLDocument(title, lang, md string) (string, error) {
	body, err := RenderHTML(md)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(lang) == "" {
		lang = "fr"
	}
	var b bytes.Buffer
	err = pageTemplate.Execute(&b, struct {
		Title string
		Lang  string
		// goldmark output is trusted only because raw HTML is disabled above.
		Body template.HTML
	}{Title: title, Lang: lang, Body: template.HTML(body)})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
