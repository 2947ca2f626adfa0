package pipeline

import "regexp"

// Precompiled patterns for the normalization pass.
var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// NormalizeMarkdown prepares raw markdown for the rest of the pipeline:
// line endings become \n and runs of blank lines collapse to at most two.
// It runs before diagram extraction so that the byte offsets captured by the
// extractor index the exact text every later stage operates on.
func NormalizeMarkdown(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}
