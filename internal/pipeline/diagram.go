package pipeline

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// diagramPattern matches a complete ```mermaid fenced block, lazily, up to
// the next closing fence. An unterminated fence never matches, so a dangling
// opening produces no occurrence. Capture 1 is the interior diagram source.
var diagramPattern = regexp.MustCompile("(?s)```mermaid[^\n\\S]*\n(.*?)\n?```")

// Occurrence is one located diagram fence within a document.
// Start and End form a half-open byte range covering the whole fenced block,
// including both fence markers. Index is the 0-based position in document
// order, used for human-readable progress messages only.
type Occurrence struct {
	Start int
	End   int
	Code  string
	Index int
}

// ExtractDiagrams scans markdown in a single pass and returns every mermaid
// fence as an Occurrence, in ascending Start order. Matches never overlap.
// The extractor has no side effects; malformed fences are simply skipped.
func ExtractDiagrams(markdown string) []Occurrence {
	matches := diagramPattern.FindAllStringSubmatchIndex(markdown, -1)
	if len(matches) == 0 {
		return nil
	}

	occurrences := make([]Occurrence, 0, len(matches))
	for i, m := range matches {
		occurrences = append(occurrences, Occurrence{
			Start: m[0],
			End:   m[1],
			Code:  strings.TrimSpace(markdown[m[2]:m[3]]),
			Index: i,
		})
	}
	return occurrences
}

// Rendered pairs an Occurrence with its render outcome.
// A nil PNG means the render failed and the original fence must be kept.
type Rendered struct {
	Occurrence
	PNG []byte
}

// SpliceDiagrams rebuilds the document with rendered diagrams replaced by
// inline image references. Occurrences are processed in descending Start
// order: replacing a later span never invalidates the stored offsets of
// earlier, not-yet-processed spans. Failed renders leave their span
// untouched, so text outside diagram spans is always byte-identical to the
// input.
func SpliceDiagrams(markdown string, rendered []Rendered) string {
	if len(rendered) == 0 {
		return markdown
	}

	// Defensive copy sorted by descending Start. Callers normally pass
	// document order, but the offset invariant must not depend on it.
	ordered := make([]Rendered, len(rendered))
	copy(ordered, rendered)
	sortByStartDescending(ordered)

	out := markdown
	for _, r := range ordered {
		if r.PNG == nil {
			continue
		}
		out = out[:r.Start] + diagramImageMarkup(r.Index, r.PNG) + out[r.End:]
	}
	return out
}

// diagramImageMarkup builds the inline data-URI image reference that replaces
// a rendered fence.
func diagramImageMarkup(index int, png []byte) string {
	encoded := base64.StdEncoding.EncodeToString(png)
	return fmt.Sprintf("![Diagram %d](data:image/png;base64,%s)", index+1, encoded)
}

// sortByStartDescending orders rendered diagrams so substitution proceeds
// from the end of the document toward the beginning. Insertion sort: the
// input is already sorted or nearly sorted in practice.
func sortByStartDescending(rendered []Rendered) {
	for i := 1; i < len(rendered); i++ {
		for j := i; j > 0 && rendered[j].Start > rendered[j-1].Start; j-- {
			rendered[j], rendered[j-1] = rendered[j-1], rendered[j]
		}
	}
}
