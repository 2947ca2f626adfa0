package pipeline

import "testing"

func TestNormalizeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "CRLF to LF",
			input: "line one\r\nline two\r\n",
			want:  "line one\nline two\n",
		},
		{
			name:  "bare CR to LF",
			input: "line one\rline two",
			want:  "line one\nline two",
		},
		{
			name:  "blank lines compressed",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "already normalized",
			input: "a\n\nb\n",
			want:  "a\n\nb\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeMarkdown(tt.input); got != tt.want {
				t.Errorf("NormalizeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
