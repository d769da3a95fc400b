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
//	-a string          HTTP bind address (e.g. ":8080")
//	-storage string    storage backend: file|postgres|s3
//	-f string          path to the users JSON file (file backend)
//	-store-fail-open   treat an unreadable users file as empty
//	-d string          PostgreSQL DSN
//	-s string          JWT HMAC secret key
//	-t duration        token validity (e.g. "24h")
//	-cost int          bcrypt cost
//
// The args are first filtered with flagx.FilterArgs so that flags handled
// elsewhere (such as -c/-config) do not cause parse errors here.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-storage", "-f", "-store-fail-open", "-d", "-s", "-t", "-cost",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend (file|postgres|s3)")
	fs.StringVar(&config.UsersFilePath, "f", config.UsersFilePath, "path to users JSON file")
	fs.BoolVar(&config.StoreFailOpen, "store-fail-open", config.StoreFailOpen, "treat unreadable users file as empty")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity duration")
	fs.IntVar(&config.BcryptCost, "cost", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
