package mdserve

import (
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// rodBrowser manages a lazily launched headless Chrome instance shared by
// the renderers that need one. Rod downloads Chromium on first run if no
// browser is found.
type rodBrowser struct {
	browser *rod.Browser
	timeout time.Duration
}

func newRodBrowser(timeout time.Duration) *rodBrowser {
	return &rodBrowser{timeout: timeout}
}

// ensure lazily connects to the browser.
func (b *rodBrowser) ensure() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/containerized
	// environments).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (b *rodBrowser) Close() error {
	if b.browser != nil {
		err := b.browser.Close()
		b.browser = nil
		return err
	}
	return nil
}
