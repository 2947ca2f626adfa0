// Command mdserve runs the Markdown conversion web service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	mdserve "github.com/mdserve/go-mdserve"
	"github.com/mdserve/go-mdserve/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flags.version {
		fmt.Println("mdserve", Version)
		return
	}

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case Go runtime defaults apply and the program continues.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(log.Printf))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flags serverFlags) error {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	applyFlagOverrides(&cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	tracker := mdserve.NewTracker()
	pool := mdserve.NewConverterPool(
		mdserve.ResolvePoolSize(cfg.Convert.Workers),
		mdserve.WithTracker(tracker),
		mdserve.WithTheme(cfg.Convert.Theme),
		mdserve.WithTimeout(time.Duration(cfg.Convert.RenderTimeoutSeconds)*time.Second),
	)
	defer pool.Close()

	srv := newServer(cfg, pool, tracker)

	if flags.verbose {
		log.Printf("pool size: %d", pool.Size())
		log.Printf("listening on %s", cfg.Server.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.app.Listen(cfg.Server.Addr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	return srv.app.ShutdownWithTimeout(10 * time.Second)
}

// applyFlagOverrides lets command-line flags beat the config file.
func applyFlagOverrides(cfg *config.Config, flags serverFlags) {
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.workers > 0 {
		cfg.Convert.Workers = flags.workers
	}
	if flags.theme != "" {
		cfg.Convert.Theme = flags.theme
	}
}
