package pipeline

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func TestExtractDiagrams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantCodes []string
	}{
		{
			name:      "no diagrams",
			input:     "# Title\n\nJust text.\n",
			wantCodes: nil,
		},
		{
			name:      "single diagram",
			input:     "before\n```mermaid\ngraph TD; A-->B;\n```\nafter",
			wantCodes: []string{"graph TD; A-->B;"},
		},
		{
			name:      "two diagrams in order",
			input:     "A ```mermaid\nX\n``` B ```mermaid\nY\n``` C",
			wantCodes: []string{"X", "Y"},
		},
		{
			name:      "interior whitespace trimmed",
			input:     "```mermaid\n\n  graph LR; A-->B;  \n\n```",
			wantCodes: []string{"graph LR; A-->B;"},
		},
		{
			name:      "unterminated fence skipped",
			input:     "```mermaid\nX\n```\ntext\n```mermaid\ndangling",
			wantCodes: []string{"X"},
		},
		{
			name:      "non-mermaid fences ignored",
			input:     "```go\nfunc main() {}\n```\n```mermaid\nflow\n```",
			wantCodes: []string{"flow"},
		},
		{
			name:      "multi-line diagram",
			input:     "```mermaid\nsequenceDiagram\n  A->>B: hi\n  B->>A: yo\n```",
			wantCodes: []string{"sequenceDiagram\n  A->>B: hi\n  B->>A: yo"},
		},
		{
			name:      "empty diagram body",
			input:     "```mermaid\n```",
			wantCodes: []string{""},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractDiagrams(tt.input)
			if len(got) != len(tt.wantCodes) {
				t.Fatalf("got %d occurrences, want %d", len(got), len(tt.wantCodes))
			}

			for i, occ := range got {
				if occ.Code != tt.wantCodes[i] {
					t.Errorf("occurrence %d: code = %q, want %q", i, occ.Code, tt.wantCodes[i])
				}
				if occ.Index != i {
					t.Errorf("occurrence %d: index = %d, want %d", i, occ.Index, i)
				}
				if occ.Start < 0 || occ.End > len(tt.input) || occ.Start >= occ.End {
					t.Errorf("occurrence %d: invalid span [%d,%d)", i, occ.Start, occ.End)
				}
				if !strings.HasPrefix(tt.input[occ.Start:occ.End], "```mermaid") {
					t.Errorf("occurrence %d: span does not start at fence: %q", i, tt.input[occ.Start:occ.End])
				}
				if !strings.HasSuffix(tt.input[occ.Start:occ.End], "```") {
					t.Errorf("occurrence %d: span does not end at fence: %q", i, tt.input[occ.Start:occ.End])
				}
				if i > 0 && occ.Start < got[i-1].End {
					t.Errorf("occurrence %d overlaps previous: start %d < prev end %d", i, occ.Start, got[i-1].End)
				}
			}
		})
	}
}

func TestSpliceDiagrams_FirstFailsSecondSucceeds(t *testing.T) {
	t.Parallel()

	doc := "A ```mermaid\nX\n``` B ```mermaid\nY\n``` C"
	occs := ExtractDiagrams(doc)
	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(occs))
	}

	png := []byte{0x89, 'P', 'N', 'G'}
	rendered := []Rendered{
		{Occurrence: occs[0], PNG: nil}, // X fails
		{Occurrence: occs[1], PNG: png}, // Y succeeds
	}

	got := SpliceDiagrams(doc, rendered)
	want := "A ```mermaid\nX\n``` B ![Diagram 2](data:image/png;base64," +
		base64.StdEncoding.EncodeToString(png) + ") C"
	if got != want {
		t.Errorf("spliced document:\n got %q\nwant %q", got, want)
	}
}

func TestSpliceDiagrams_AllFail_Passthrough(t *testing.T) {
	t.Parallel()

	doc := "A ```mermaid\nX\n``` B ```mermaid\nY\n``` C"
	occs := ExtractDiagrams(doc)

	rendered := make([]Rendered, len(occs))
	for i, occ := range occs {
		rendered[i] = Rendered{Occurrence: occ}
	}

	if got := SpliceDiagrams(doc, rendered); got != doc {
		t.Errorf("all-failed splice mutated document:\n got %q\nwant %q", got, doc)
	}
}

func TestSpliceDiagrams_NoDiagrams_Passthrough(t *testing.T) {
	t.Parallel()

	doc := "plain text, no fences"
	if got := SpliceDiagrams(doc, nil); got != doc {
		t.Errorf("got %q, want input unchanged", got)
	}
}

// TestSpliceDiagrams_OffsetSafety verifies the descending-order substitution
// invariant under randomized diagram placement and per-diagram outcomes:
// text outside diagram spans is byte-identical to the original, successful
// spans are replaced, and failed spans are preserved verbatim.
func TestSpliceDiagrams_OffsetSafety(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(8)

		var doc strings.Builder
		doc.WriteString(randomText(rng))
		for i := 0; i < n; i++ {
			fmt.Fprintf(&doc, "```mermaid\ndiagram %d\n```", i)
			doc.WriteString(randomText(rng))
		}
		input := doc.String()

		occs := ExtractDiagrams(input)
		if len(occs) != n {
			t.Fatalf("trial %d: extracted %d diagrams, want %d", trial, len(occs), n)
		}

		rendered := make([]Rendered, n)
		for i, occ := range occs {
			rendered[i] = Rendered{Occurrence: occ}
			if rng.Intn(2) == 0 {
				rendered[i].PNG = []byte{byte(i)}
			}
		}

		// Shuffle to prove substitution order does not depend on input order.
		rng.Shuffle(n, func(i, j int) { rendered[i], rendered[j] = rendered[j], rendered[i] })

		got := SpliceDiagrams(input, rendered)

		// Rebuild the expected document forward from the original offsets.
		byIndex := make([]Rendered, n)
		for _, r := range rendered {
			byIndex[r.Index] = r
		}
		var want strings.Builder
		prev := 0
		for _, r := range byIndex {
			want.WriteString(input[prev:r.Start])
			if r.PNG != nil {
				want.WriteString(diagramImageMarkup(r.Index, r.PNG))
			} else {
				want.WriteString(input[r.Start:r.End])
			}
			prev = r.End
		}
		want.WriteString(input[prev:])

		if got != want.String() {
			t.Fatalf("trial %d (n=%d): splice mismatch\n got %q\nwant %q", trial, n, got, want.String())
		}
	}
}

// randomText produces filler free of backticks so it can never form a fence.
func randomText(rng *rand.Rand) string {
	words := []string{"alpha ", "beta\n", "# head\n", "gamma delta ", "\n\n", "- item\n"}
	var b strings.Builder
	for i := rng.Intn(5); i > 0; i-- {
		b.WriteString(words[rng.Intn(len(words))])
	}
	return b.String()
}
