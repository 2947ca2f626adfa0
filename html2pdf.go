package mdserve

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/mdserve/go-mdserve/internal/fileutil"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfOptions holds layout options for PDF generation.
type pdfOptions struct {
	Page   *PageSettings
	Header *Header
	Footer *Footer
}

// pageDimensions maps page size names to width/height in inches (portrait).
var pageDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// Extra bottom/top margin reserved for printed footer/header bands.
const bandMarginInches = 0.75

// footerFontFamily styles Chrome's native header/footer bands.
const footerFontFamily = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`

// rodPDFConverter converts HTML to PDF using headless Chrome via go-rod.
type rodPDFConverter struct {
	browser *rodBrowser
	now     func() time.Time
}

var _ pdfConverter = (*rodPDFConverter)(nil)

func newRodPDFConverter(timeout time.Duration) *rodPDFConverter {
	return &rodPDFConverter{browser: newRodBrowser(timeout), now: time.Now}
}

// ToPDF writes the HTML to a temp file, loads it in headless Chrome, and
// prints it with the requested page layout.
func (c *rodPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.browser.ensure(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	page, err := c.browser.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := c.browser.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(c.buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBytes, nil
}

// Close releases browser resources.
func (c *rodPDFConverter) Close() error {
	return c.browser.Close()
}

// buildPrintOptions constructs proto.PagePrintToPDF from layout options.
func (c *rodPDFConverter) buildPrintOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	settings := DefaultPageSettings()
	if opts != nil && opts.Page != nil {
		settings = opts.Page
	}

	dims, ok := pageDimensions[strings.ToLower(settings.Size)]
	if !ok {
		dims = pageDimensions[PageSizeLetter]
	}
	width, height := dims[0], dims[1]
	if strings.ToLower(settings.Orientation) == OrientationLandscape {
		width, height = height, width
	}

	margin := settings.Margin
	marginTop := margin
	marginBottom := margin

	hasHeader := opts != nil && opts.Header != nil
	hasFooter := opts != nil && opts.Footer != nil
	if hasHeader && marginTop < bandMarginInches {
		marginTop = bandMarginInches
	}
	if hasFooter && marginBottom < bandMarginInches {
		marginBottom = bandMarginInches
	}

	printOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(marginTop),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}

	if hasHeader || hasFooter {
		printOpts.DisplayHeaderFooter = true
		printOpts.HeaderTemplate = c.buildHeaderTemplate(opts.Header)
		printOpts.FooterTemplate = c.buildFooterTemplate(opts.Footer)
	}

	return printOpts
}

// buildHeaderTemplate generates Chrome's native header band.
func (c *rodPDFConverter) buildHeaderTemplate(h *Header) string {
	if h == nil {
		return "<span></span>"
	}

	var parts []string
	if h.Text != "" {
		parts = append(parts, html.EscapeString(h.Text))
	}
	if h.ShowDate {
		parts = append(parts, c.now().Format("2006-01-02"))
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	return fmt.Sprintf(
		`<div style="font-size: 10px; font-family: %s; color: #aaa; width: 100%%; text-align: center; padding: 0 0.5in;">%s</div>`,
		footerFontFamily, strings.Join(parts, " - "))
}

// buildFooterTemplate generates Chrome's native footer band.
// Page numbers use Chrome's pageNumber/totalPages CSS classes.
func (c *rodPDFConverter) buildFooterTemplate(f *Footer) string {
	if f == nil {
		return "<span></span>"
	}

	var parts []string
	if f.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if f.ShowDate {
		parts = append(parts, c.now().Format("2006-01-02"))
	}
	if f.Text != "" {
		parts = append(parts, html.EscapeString(f.Text))
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	textAlign := "right"
	switch strings.ToLower(f.Position) {
	case "left":
		textAlign = "left"
	case "center":
		textAlign = "center"
	}

	return fmt.Sprintf(
		`<div style="font-size: 10px; font-family: %s; color: #aaa; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`,
		footerFontFamily, textAlign, strings.Join(parts, " - "))
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
