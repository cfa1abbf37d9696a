package config

import "github.com/urfave/cli/v3"

// Slack holds Slack configuration
type Slack struct {
	Token string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("TDABOT_SLACK_TOKEN"),
		},
	}
}
