package config

import "github.com/urfave/cli/v3"

// Sentry holds error reporting configuration. Reporting is disabled when
// the DSN is empty.
type Sentry struct {
	DSN string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (empty disables error reporting)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("TDABOT_SENTRY_DSN"),
		},
	}
}
