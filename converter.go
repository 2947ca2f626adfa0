package mdserve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdserve/go-mdserve/internal/assets"
	"github.com/mdserve/go-mdserve/internal/fileutil"
	"github.com/mdserve/go-mdserve/internal/pipeline"
)

// Converter turns Markdown into HTML, PDF, or DOCX documents.
// It orchestrates small collaborators for each stage: goldmark for the
// Markdown-to-HTML step, headless Chrome for diagrams and PDF printing, and
// the in-memory package builder for DOCX. A Converter is not safe for
// concurrent use; run one per worker (see ConverterPool).
type Converter struct {
	cfg converterConfig

	htmlLive   pipeline.HTMLConverter
	htmlStatic pipeline.HTMLConverter
	diagrams   diagramRenderer
	pdf        pdfConverter
	docx       docxConverter
	tracker    *Tracker
}

// NewConverter creates a Converter with the default backends.
// The browser is launched lazily on the first render that needs it.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			theme:   assets.DefaultTheme,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.htmlLive = pipeline.NewGoldmarkConverter(true)
	c.htmlStatic = pipeline.NewGoldmarkConverter(false)
	c.diagrams = newRodDiagramRenderer(c.cfg.timeout)
	c.pdf = newRodPDFConverter(c.cfg.timeout)
	c.docx = newDocxBuilder()
	return c
}

// Convert runs the full pipeline for one request.
// Progress is reported through the tracker under input.JobID; with no tracker
// or an empty id the reporting is a no-op. An invalid request is rejected
// before the pipeline starts and leaves the job registry untouched; once the
// pipeline has started, the job is always completed, with an error message on
// failure so subscribers are not left hanging.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	themeCSS, err := c.validate(input)
	if err != nil {
		return nil, err
	}

	result, err := c.convert(ctx, input, themeCSS)
	if err != nil {
		c.complete(input.JobID, "Error")
		return nil, err
	}
	c.complete(input.JobID, "Done")
	return result, nil
}

// validate rejects a bad request and resolves its stylesheet. It runs before
// any progress is reported, so a rejected request never creates a job.
func (c *Converter) validate(input Input) (string, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return "", ErrEmptyMarkdown
	}
	switch input.Format {
	case FormatHTML, FormatPDF, FormatDOCX:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}
	if err := input.Page.Validate(); err != nil {
		return "", err
	}
	if err := input.Footer.Validate(); err != nil {
		return "", err
	}

	themeCSS, err := c.resolveTheme(input.Theme)
	if err != nil {
		return "", err
	}
	if input.CSS != "" {
		themeCSS += "\n" + input.CSS
	}
	return themeCSS, nil
}

func (c *Converter) convert(ctx context.Context, input Input, themeCSS string) (*Result, error) {
	c.progress(input.JobID, 1, "Starting")

	markdown := pipeline.NormalizeMarkdown(input.Markdown)

	// HTML output keeps diagrams live for the client; PDF and DOCX need
	// them rendered to images up front.
	if input.Format != FormatHTML {
		markdown = c.renderDiagrams(ctx, input.JobID, markdown)
	}

	c.progress(input.JobID, 65, "Rendering HTML")

	htmlConv := c.htmlStatic
	if input.Format == FormatHTML {
		htmlConv = c.htmlLive
	}
	fragment, err := htmlConv.ToHTML(ctx, markdown)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	title := documentTitle(input.Filename)

	var data []byte
	switch input.Format {
	case FormatHTML:
		c.progress(input.JobID, 75, "Applying theme")
		doc := pipeline.BuildDocument(fragment, pipeline.DocumentOptions{
			Title:        title,
			CSS:          themeCSS,
			TOC:          input.TOC,
			LiveDiagrams: true,
		})
		data = []byte(doc)

	case FormatPDF:
		c.progress(input.JobID, 70, "Preparing PDF")
		doc := pipeline.BuildDocument(fragment, pipeline.DocumentOptions{
			Title: title,
			CSS:   themeCSS,
		})
		data, err = c.pdf.ToPDF(ctx, doc, &pdfOptions{
			Page:   input.Page,
			Header: input.Header,
			Footer: input.Footer,
		})
		if err != nil {
			return nil, err
		}

	case FormatDOCX:
		c.progress(input.JobID, 70, "Preparing DOCX")
		data, err = c.docx.ToDocx(ctx, fragment, title, input.Docx)
		if err != nil {
			return nil, err
		}
	}

	c.progress(input.JobID, 90, "Finalizing")

	return &Result{
		Data:        data,
		ContentType: input.Format.ContentType(),
		Filename:    OutputFilename(input.Filename, input.Format),
	}, nil
}

// renderDiagrams renders every mermaid fence to PNG and splices the images
// back into the Markdown. A diagram that fails to render keeps its original
// fence; the conversion never fails because one diagram did.
func (c *Converter) renderDiagrams(ctx context.Context, jobID, markdown string) string {
	occurrences := pipeline.ExtractDiagrams(markdown)
	if len(occurrences) == 0 {
		return markdown
	}

	total := len(occurrences)
	rendered := make([]pipeline.Rendered, 0, total)
	for i, occ := range occurrences {
		png, err := c.diagrams.RenderPNG(ctx, occ.Code)
		if err != nil {
			png = nil
		}
		rendered = append(rendered, pipeline.Rendered{Occurrence: occ, PNG: png})
		c.progress(jobID, 5+55*(i+1)/total, fmt.Sprintf("Rendered diagram %d/%d", i+1, total))
	}

	return pipeline.SpliceDiagrams(markdown, rendered)
}

// resolveTheme looks up the stylesheet for the requested theme, falling back
// to the converter's configured default when the input names none. A value
// containing a path separator is treated as a stylesheet file on disk
// instead of a built-in theme name.
func (c *Converter) resolveTheme(name string) (string, error) {
	if name == "" {
		name = c.cfg.theme
	}

	if fileutil.IsFilePath(name) {
		if !fileutil.FileExists(name) {
			return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
		}
		css, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrUnknownTheme, name, err)
		}
		return string(css), nil
	}

	css, ok := assets.ThemeCSS(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return css, nil
}

// documentTitle derives a page title from the uploaded filename.
func documentTitle(filename string) string {
	base := strings.TrimSpace(filepath.Base(filename))
	if base == "" || base == "." {
		return "Document"
	}
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func (c *Converter) progress(id string, pct int, message string) {
	if c.tracker == nil {
		return
	}
	c.tracker.Update(id, pct, message)
}

func (c *Converter) complete(id, message string) {
	if c.tracker == nil {
		return
	}
	c.tracker.Complete(id, message)
}

// Close releases the browser-backed renderers.
func (c *Converter) Close() error {
	var errs []error
	if c.diagrams != nil {
		if err := c.diagrams.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.pdf != nil {
		if err := c.pdf.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
