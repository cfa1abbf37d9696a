package config

import "github.com/urfave/cli/v3"

// Jira holds issue tracker configuration
type Jira struct {
	BaseURL        string
	Username       string
	Token          string
	AgendaFilterID string

	// Custom field IDs differ per Jira instance
	DecisionStatusField string
	ClassificationField string
}

// Flags returns CLI flags for Jira configuration
func (c *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-base-url",
			Usage:       "Jira instance root URL (also used for browse links)",
			Required:    true,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("TDABOT_JIRA_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "jira-username",
			Usage:       "Jira account for basic authentication",
			Required:    true,
			Destination: &c.Username,
			Sources:     cli.EnvVars("TDABOT_JIRA_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "jira-token",
			Usage:       "Jira API token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("TDABOT_JIRA_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "jira-agenda-filter",
			Usage:       "Saved filter ID selecting upcoming agenda items",
			Required:    true,
			Destination: &c.AgendaFilterID,
			Sources:     cli.EnvVars("TDABOT_JIRA_AGENDA_FILTER"),
		},
		&cli.StringFlag{
			Name:        "jira-decision-status-field",
			Usage:       "Custom field ID holding the decision sign-off status",
			Value:       "customfield_10241",
			Destination: &c.DecisionStatusField,
			Sources:     cli.EnvVars("TDABOT_JIRA_DECISION_STATUS_FIELD"),
		},
		&cli.StringFlag{
			Name:        "jira-classification-field",
			Usage:       "Custom field ID listing impacted value-streams",
			Value:       "customfield_10383",
			Destination: &c.ClassificationField,
			Sources:     cli.EnvVars("TDABOT_JIRA_CLASSIFICATION_FIELD"),
		},
	}
}
