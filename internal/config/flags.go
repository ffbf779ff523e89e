package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vingd/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-e string   environment preset: production or sandbox
//	-b string   backend URL override
//	-f string   frontend URL override
//	-u string   account username
//	-t int      connect timeout in seconds
//	-r int      maximum redirects followed per request
//	-k          skip TLS certificate verification
//	-l string   log level: debug, info, warn, error
//	-g string   log backend: slog or logrus
//
// os.Args is filtered with flagx.FilterArgs first so that -c/-config does not
// trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-b", "-f", "-u", "-t", "-r", "-k", "-l", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Environment, "e", cfg.Environment, "broker environment (production, sandbox)")
	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "broker backend URL")
	fs.StringVar(&cfg.FrontendURL, "f", cfg.FrontendURL, "broker frontend URL")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "account username")
	connectTimeout := fs.Int("t", int(cfg.ConnectTimeout.Seconds()), "connect timeout (in seconds)")
	fs.IntVar(&cfg.MaxRedirects, "r", cfg.MaxRedirects, "maximum redirects per request")
	fs.BoolVar(&cfg.InsecureSkipVerify, "k", cfg.InsecureSkipVerify, "skip TLS certificate verification")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "g", cfg.LogBackend, "log backend (slog, logrus)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides what was set when passed, so sub-second values from
	// the config file survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.ConnectTimeout = time.Duration(*connectTimeout) * time.Second
		}
	})
}
