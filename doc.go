// Package mdserve converts Markdown documents to HTML, PDF, and DOCX, with
// mermaid diagram blocks rendered to images via headless Chrome.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv := mdserve.NewConverter()
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdserve.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Format:   mdserve.FormatPDF,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown normalization (line endings, blank-line collapsing)
//  2. Mermaid diagram extraction and PNG rendering via headless Chrome
//     (PDF and DOCX targets; HTML keeps diagrams live for the client)
//  3. Markdown to HTML conversion via Goldmark (GFM, syntax highlighting)
//  4. Document assembly per target: themed HTML page, Chrome-printed PDF,
//     or an in-memory WordprocessingML package
//
// A diagram that fails to render keeps its original code fence; one bad
// diagram never fails the whole conversion.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := mdserve.NewConverter(
//	    mdserve.WithTimeout(2 * time.Minute),
//	    mdserve.WithTheme("dark"),
//	    mdserve.WithTracker(tracker),
//	)
//
// # Progress Tracking
//
// A Tracker fans conversion progress out to subscribers. Pass a job id in
// Input.JobID and subscribe with the same id to receive push updates:
//
//	tracker := mdserve.NewTracker()
//	ch, cancel := tracker.Subscribe("job-1")
//	defer cancel()
//
//	go conv.Convert(ctx, mdserve.Input{Markdown: md, Format: mdserve.FormatPDF, JobID: "job-1"})
//	for evt := range ch {
//	    fmt.Printf("%d%% %s\n", evt.Progress, evt.Message)
//	}
//
// # Parallel Processing
//
// A Converter is not safe for concurrent use; servers should run one per
// worker via ConverterPool:
//
//	pool := mdserve.NewConverterPool(mdserve.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package mdserve
