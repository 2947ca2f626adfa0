package main

import (
	flag "github.com/spf13/pflag"
)

// serverFlags holds command-line overrides. Flags beat the config file.
type serverFlags struct {
	config  string
	addr    string
	workers int
	theme   string
	verbose bool
	version bool
}

// parseFlags parses args (without the program name).
func parseFlags(args []string) (serverFlags, error) {
	fs := flag.NewFlagSet("mdserve", flag.ContinueOnError)

	var f serverFlags
	fs.StringVarP(&f.config, "config", "c", "", "path to config file (default: ./mdserve.yaml if present)")
	fs.StringVar(&f.addr, "addr", "", "listen address (overrides config)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "converter pool size (0 = auto from CPU count)")
	fs.StringVar(&f.theme, "theme", "", "default theme name (overrides config)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose startup logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return serverFlags{}, err
	}
	return f, nil
}
