package projects

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// DescriptionHTML renders the description as Markdown. Raw HTML in the
// source is not passed through. If rendering fails the escaped plain text is
// returned instead.
func (e Entry) DescriptionHTML() template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(e.Description), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(e.Description))
	}
	return template.HTML(buf.String())
}
