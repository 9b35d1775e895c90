// Package markdown renders model output (markdown-flavoured plain text) to HTML.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in the source is never passed through; summaries are untrusted model output.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Models often emit "•" style bullets that CommonMark does not treat as lists.
var bulletPattern = regexp.MustCompile(`(?m)^(\s*)[•·▪]\s+`)

// RenderHTML converts summary text to an HTML fragment.
func RenderHTML(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = bulletPattern.ReplaceAllString(text, "$1- ")

	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "<p>" + template.HTMLEscapeString(text) + "</p>"
	}
	return out.String()
}
