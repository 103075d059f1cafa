// Package richtext renders markdown-formatted translations to sanitized
// HTML.
//
// Catalog authors write emphasis, links, and lists in markdown; templates
// embed the rendered result without escaping:
//
//	renderer := richtext.New()
//	html, err := renderer.Render(translator.T("legal.consent"))
//
// The output passes through bluemonday, so markup injected through
// translations or placeholder values cannot reach the page. The default
// policy admits basic formatting and standard links only; swap it with
// WithPolicy, or use WithStrictPolicy to reduce translations to plain text:
//
//	plain := richtext.New(richtext.WithStrictPolicy())
package richtext
