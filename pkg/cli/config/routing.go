package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/govbridge/tdabot/pkg/domain/model"
)

// Routing holds the paths to data-driven configuration: the channel map
// file and the template directory.
type Routing struct {
	MappingPath string
	TemplateDir string
}

// Flags returns CLI flags for routing configuration
func (c *Routing) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "channel-map",
			Usage:       "TOML file mapping value-streams to channels and listing scorecard topics",
			Required:    true,
			Destination: &c.MappingPath,
			Sources:     cli.EnvVars("TDABOT_CHANNEL_MAP"),
		},
		&cli.StringFlag{
			Name:        "template-dir",
			Usage:       "Directory holding message templates",
			Value:       "templates",
			Destination: &c.TemplateDir,
			Sources:     cli.EnvVars("TDABOT_TEMPLATE_DIR"),
		},
	}
}

// LoadChannelMap reads and validates the channel map file
func (c *Routing) LoadChannelMap() (*model.ChannelMap, error) {
	raw, err := os.ReadFile(c.MappingPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read channel map", goerr.V("path", c.MappingPath))
	}

	var channels model.ChannelMap
	if err := toml.Unmarshal(raw, &channels); err != nil {
		return nil, goerr.Wrap(err, "failed to parse channel map", goerr.V("path", c.MappingPath))
	}

	if err := channels.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid channel map", goerr.V("path", c.MappingPath))
	}

	return &channels, nil
}
