package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/finplanner/internal/flagx"
)

// parseFlags overlays command-line flags. Only the flags below are looked at;
// everything else in args is ignored.
//
//	-a string     HTTP listen address (":3000")
//	-d string     database DSN, or memory://
//	-s string     JWT secret key
//	-e string     environment name (dev, prod)
//	-t duration   session token validity ("168h")
//	-m string     mail provider (log, ses)
//	-o string     frontend origin used in email links
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-e", "-t", "-m", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to listen on")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.StringVar(&cfg.Env, "e", cfg.Env, "environment")
	fs.DurationVar(&cfg.TokenValidity, "t", cfg.TokenValidity, "session token validity")
	fs.StringVar(&cfg.MailProvider, "m", cfg.MailProvider, "mail provider")
	fs.StringVar(&cfg.FrontendOrigin, "o", cfg.FrontendOrigin, "frontend origin")

	return fs.Parse(args)
}
