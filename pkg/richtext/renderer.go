package richtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/i18n"
)

// Renderer converts markdown translations to sanitized HTML. It is safe for
// concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPolicy replaces the sanitization policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithStrictPolicy strips every tag, yielding plain text with markdown
// syntax resolved and removed.
func WithStrictPolicy() Option {
	return func(r *Renderer) {
		r.policy = bluemonday.StrictPolicy()
	}
}

// New creates a Renderer. The default policy allows basic formatting
// (paragraphs, emphasis, lists, code, blockquotes) and standard links with
// rel="nofollow"; everything else is stripped.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md:     goldmark.New(),
		policy: defaultPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts markdown to HTML and sanitizes the result.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

// RenderValue renders every form of a resolved translation: one element for
// a single value, one per variant for a list.
func (r *Renderer) RenderValue(v i18n.Value) ([]string, error) {
	if !v.IsList() {
		html, err := r.Render(v.String())
		if err != nil {
			return nil, err
		}
		return []string{html}, nil
	}

	out := make([]string, 0, len(v.Strings()))
	for _, variant := range v.Strings() {
		html, err := r.Render(variant)
		if err != nil {
			return nil, err
		}
		out = append(out, html)
	}
	return out, nil
}

func defaultPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}
