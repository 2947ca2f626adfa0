package mdserve

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format identifies a conversion output target.
type Format string

// Supported output formats.
const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat validates a caller-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatHTML:
		return FormatHTML, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/html; charset=utf-8"
	}
}

// Extension returns the output file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Header configures the printed page header (PDF only).
type Header struct {
	Text     string
	ShowDate bool
}

// Footer configures the printed page footer (PDF only).
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	ShowDate       bool
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// DocxOptions configures DOCX document parts.
type DocxOptions struct {
	Header      bool // emit a header part with the document title
	Footer      bool // emit a footer part
	PageNumbers bool // include a page-number field in the footer
}

// Input contains conversion parameters for one request.
type Input struct {
	Markdown string        // Markdown content (required)
	Filename string        // original document filename, used to derive the output name
	Format   Format        // output target (required)
	Theme    string        // built-in theme name or path to a CSS file (empty = default theme)
	CSS      string        // extra user CSS appended after the theme
	TOC      bool          // render a table-of-contents sidebar (HTML only)
	Page     *PageSettings // PDF page settings (nil = defaults)
	Header   *Header       // PDF header (nil = none)
	Footer   *Footer       // PDF footer (nil = none)
	Docx     *DocxOptions  // DOCX parts (nil = body only)
	JobID    string        // progress tracking token (empty = no tracking)
}

// Result is the outcome of a successful conversion.
type Result struct {
	Data        []byte
	ContentType string
	Filename    string
}

// OutputFilename derives the suggested output name from the input filename
// by swapping the extension. A missing input name falls back to a generated
// one so the Content-Disposition header is never empty.
func OutputFilename(inputName string, format Format) string {
	base := strings.TrimSpace(filepath.Base(inputName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "document-" + uuid.NewString()[:8] + "." + format.Extension()
	}
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format.Extension()
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout time.Duration
	theme   string
}

// defaultTimeout bounds each external render call.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdserve: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme sets the default theme used when the input does not name one.
func WithTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.theme = name
	}
}

// WithTracker wires a progress tracker into the converter.
// Without one, progress reporting is a silent no-op.
func WithTracker(t *Tracker) Option {
	return func(c *Converter) {
		c.tracker = t
	}
}
