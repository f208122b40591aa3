package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/pitlane/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-d", "-s", "-t", "-l", "-r", "-b", "-cookie-secure"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          HTTP bind address (e.g. ":8000")
//	-g string          gRPC health bind address
//	-d string          database DSN
//	-s string          JWT HMAC secret key
//	-t int             access token validity, minutes
//	-l string          log level
//	-r float           login attempts per second per client
//	-b int             login burst per client
//	-cookie-secure     mark the session cookie Secure (use -cookie-secure=true)
//
// args is filtered with flagx.FilterArgs first so the -c config flag and
// flags owned by other components do not collide.
func parseFlags(config *Config, args []string) error {
	filtered := flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("pitlane", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve HTTP on")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC health on")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.Float64Var(&config.LoginRateLimit, "r", config.LoginRateLimit, "login attempts per second per client")
	fs.IntVar(&config.LoginRateBurst, "b", config.LoginRateBurst, "login burst per client")
	fs.BoolVar(&config.CookieSecure, "cookie-secure", config.CookieSecure, "set the Secure attribute on the session cookie")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		}
	})
	return nil
}
