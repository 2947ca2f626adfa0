package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// mermaidScript hydrates <div class="mermaid"> blocks in the browser.
// Only injected when diagrams are kept live (HTML output target).
const mermaidScript = `<script src="https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"></script>
<script>mermaid.initialize({startOnLoad:true});</script>`

// DocumentOptions controls how an HTML fragment is wrapped into a page.
type DocumentOptions struct {
	Title        string
	CSS          string
	TOC          bool // render a sidebar built from headings
	LiveDiagrams bool // include the mermaid client script
}

// BuildDocument wraps a goldmark fragment into a complete HTML5 page with
// the theme CSS inlined. CSS is sanitized so user-supplied styles cannot
// close the <style> block early.
func BuildDocument(fragment string, opts DocumentOptions) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(documentTitle(opts.Title)))
	b.WriteString("</title>\n")

	if opts.CSS != "" {
		b.WriteString("<style>")
		b.WriteString(sanitizeCSS(opts.CSS))
		b.WriteString("</style>\n")
	}

	b.WriteString("</head>\n<body>\n")

	if opts.TOC {
		if sidebar := buildTOCSidebar(fragment); sidebar != "" {
			b.WriteString(`<div class="layout">`)
			b.WriteString(sidebar)
			b.WriteString(`<main class="content">`)
			b.WriteString(fragment)
			b.WriteString("</main></div>\n")
		} else {
			b.WriteString(fragment)
		}
	} else {
		b.WriteString(fragment)
	}

	if opts.LiveDiagrams {
		b.WriteString(mermaidScript)
		b.WriteString("\n")
	}

	b.WriteString("</body>\n</html>")
	return b.String()
}

func documentTitle(title string) string {
	if title == "" {
		return "Document"
	}
	return title
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// headingPattern matches h1-h6 tags carrying an id attribute.
// Captures: 1=level, 2=id, 3=inner HTML.
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern strips inline tags from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// headingInfo is one sidebar entry extracted from the rendered fragment.
type headingInfo struct {
	Level int
	ID    string
	Text  string
}

// extractHeadings returns h1-h3 headings that carry anchor IDs,
// in document order.
func extractHeadings(fragment string) []headingInfo {
	matches := headingPattern.FindAllStringSubmatch(fragment, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []headingInfo
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level > 3 {
			continue
		}
		text := strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(m[3], "")))
		if text == "" {
			continue
		}
		headings = append(headings, headingInfo{Level: level, ID: m[2], Text: text})
	}
	return headings
}

// buildTOCSidebar renders a navigation sidebar linking to document headings.
// Returns "" when the document has no linkable headings.
func buildTOCSidebar(fragment string) string {
	headings := extractHeadings(fragment)
	if len(headings) == 0 {
		return ""
	}

	// Indent relative to the shallowest heading present.
	minLevel := headings[0].Level
	for _, h := range headings {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc-sidebar">`)
	for _, h := range headings {
		depth := h.Level - minLevel
		b.WriteString(`<div class="toc-item"`)
		if depth > 0 {
			b.WriteString(fmt.Sprintf(` style="padding-left:%d.0em"`, depth))
		}
		b.WriteString(`><a href="#`)
		b.WriteString(html.EscapeString(h.ID))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(h.Text))
		b.WriteString(`</a></div>`)
	}
	b.WriteString(`</nav>`)
	return b.String()
}
