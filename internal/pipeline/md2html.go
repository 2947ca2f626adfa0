package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion wraps goldmark failures.
var ErrHTMLConversion = errors.New("HTML conversion failed")

const mermaidLanguage = "mermaid"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
// With liveDiagrams set, mermaid fences become <div class="mermaid"> blocks
// for client-side hydration; otherwise they render as ordinary highlighted
// code blocks so a failed diagram stays visible in the output document.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a converter with GFM, footnotes, auto heading
// IDs, and chroma-backed syntax highlighting.
func NewGoldmarkConverter(liveDiagrams bool) *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.TabWidth(4),
				),
				highlighting.WithWrapperRenderer(codeBlockWrapper(liveDiagrams)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Goldmark has no native context support, so the conversion runs in a
// goroutine raced against ctx.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// codeBlockWrapper returns the highlighting wrapper used for fenced code
// blocks. Highlighted blocks keep chroma's own markup; unhighlighted mermaid
// fences become mermaid divs when live rendering is requested.
func codeBlockWrapper(liveDiagrams bool) highlighting.WrapperRenderer {
	return func(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
		if ctx.Highlighted() {
			return
		}

		lang, _ := ctx.Language()
		if liveDiagrams && strings.TrimSpace(strings.ToLower(string(lang))) == mermaidLanguage {
			if entering {
				_, _ = w.WriteString(`<div class="mermaid">`)
			} else {
				_, _ = w.WriteString("</div>\n")
			}
			return
		}

		if entering {
			_, _ = w.WriteString("<pre><code")
			if len(bytes.TrimSpace(lang)) > 0 {
				_, _ = w.WriteString(` class="language-`)
				_, _ = w.Write(util.EscapeHTML(lang))
				_, _ = w.WriteString(`"`)
			}
			_, _ = w.WriteString(">")
			return
		}
		_, _ = w.WriteString("</code></pre>\n")
	}
}
