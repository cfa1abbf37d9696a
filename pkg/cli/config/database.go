package config

import "github.com/urfave/cli/v3"

// Database holds event store configuration
type Database struct {
	Path string
}

// Flags returns CLI flags for database configuration
func (c *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-path",
			Usage:       "SQLite database file for contribution events",
			Value:       "tdabot.db",
			Destination: &c.Path,
			Sources:     cli.EnvVars("TDABOT_DB_PATH"),
		},
	}
}
