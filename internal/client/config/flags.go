package config

import (
	"flag"
	"io"
	"time"

	"github.com/heva-credit/heva/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   backend base URL
//	-s string   SQLite storage DSN
//	-t int      request timeout in seconds
//	-m string   metrics listen address (e.g. "127.0.0.1:9464")
//
// Only these flags are looked at, so the CLI may accept others.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-m"})

	fs := flag.NewFlagSet("heva", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	fs.StringVar(&cfg.StorageDSN, "s", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
