package mdserve

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/mdserve/go-mdserve/internal/fileutil"
)

// diagramRenderer abstracts out-of-process diagram rendering.
// Each call is independent and may fail; the converter treats a failure as
// "leave the original fence unchanged", never as a fatal error.
type diagramRenderer interface {
	RenderPNG(ctx context.Context, code string) ([]byte, error)
	Close() error
}

// diagramPageTemplate is the scratch page loaded into headless Chrome for
// one diagram. Mermaid replaces the <pre> with an inline SVG once it runs.
const diagramPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>body{margin:0;padding:8px;background:#ffffff}</style>
</head>
<body>
<pre class="mermaid">%s</pre>
<script src="https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"></script>
<script>mermaid.initialize({startOnLoad:true,theme:"default"});</script>
</body>
</html>`

// rodDiagramRenderer renders mermaid source to PNG bytes by loading it in
// headless Chrome, waiting for the rendered SVG, and screenshotting it.
// One renderer holds one browser; calls are issued serially by the converter
// to bound peak resource usage.
type rodDiagramRenderer struct {
	browser *rodBrowser
}

var _ diagramRenderer = (*rodDiagramRenderer)(nil)

func newRodDiagramRenderer(timeout time.Duration) *rodDiagramRenderer {
	return &rodDiagramRenderer{browser: newRodBrowser(timeout)}
}

// RenderPNG renders one diagram. The wait for mermaid to produce an SVG is
// bounded by the configured timeout or the context deadline, whichever is
// sooner; a diagram that fails to render in time is reported as an error.
func (r *rodDiagramRenderer) RenderPNG(ctx context.Context, code string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.browser.ensure(); err != nil {
		return nil, err
	}

	pageHTML := fmt.Sprintf(diagramPageTemplate, html.EscapeString(code))
	tmpPath, cleanup, err := fileutil.WriteTempFile(pageHTML, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	defer cleanup()

	page, err := r.browser.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.browser.timeout
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

	// Mermaid signals success by swapping the <pre> for an <svg>.
	// A syntax error leaves no SVG behind, which surfaces here as a
	// timeout and downgrades to a kept fence upstream.
	svg, err := page.Timeout(timeout).Element(".mermaid svg")
	if err != nil {
		return nil, fmt.Errorf("%w: no rendered diagram: %v", ErrDiagramRender, err)
	}

	png, err := svg.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("%w: empty screenshot", ErrDiagramRender)
	}
	return png, nil
}

// Close releases browser resources.
func (r *rodDiagramRenderer) Close() error {
	return r.browser.Close()
}
