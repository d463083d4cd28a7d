package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/nestify/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend API base URL
//	-s string   path of the local SQLite store
//	-l string   log level (debug, info, warn, error)
//	-t duration HTTP request timeout, 0 for none
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// layers (-c) do not cause errors here.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-l", "-t"})

	fs := flag.NewFlagSet("nestify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the local store")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.HTTPTimeout, "t", cfg.HTTPTimeout, "http request timeout")

	return fs.Parse(args)
}
