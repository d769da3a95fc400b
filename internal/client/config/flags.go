package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/authvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the authvault server
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// components do not trip the flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "base URL of the server")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
