package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/domain/types"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

type adrUseCase struct {
	tracker  interfaces.IssueTracker
	slack    interfaces.SlackClient
	renderer interfaces.TemplateRenderer
	channels *model.ChannelMap
	rootURL  string
	metrics  *metrics.Metrics
}

// NewADR creates the decision-record publisher
func NewADR(
	tracker interfaces.IssueTracker,
	slack interfaces.SlackClient,
	renderer interfaces.TemplateRenderer,
	channels *model.ChannelMap,
	rootURL string,
	m *metrics.Metrics,
) interfaces.ADRUseCase {
	return &adrUseCase{
		tracker:  tracker,
		slack:    slack,
		renderer: renderer,
		channels: channels,
		rootURL:  rootURL,
		metrics:  m,
	}
}

// PublishADR broadcasts one decision record to the channel of every
// impacted value-stream. An issue with no value-streams still produces one
// notification, to the primary channel. Delivery failures are collected
// per target; a failed channel never blocks its siblings.
func (uc *adrUseCase) PublishADR(ctx context.Context, issueKey string) (*model.FanoutResult, error) {
	logger := ctxlog.From(ctx)

	if issueKey == "" {
		return nil, goerr.New("no issue key provided", goerr.T(types.ErrTagMissingKey))
	}

	issue, err := uc.tracker.GetIssue(ctx, issueKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch decision record", goerr.V("key", issueKey))
	}

	joined := joinValueStreams(issue.Classifications)

	assignee := issue.Assignee
	if assignee == "" {
		assignee = "Unassigned"
	}

	// One delivery per value-stream, each routed on its own label. No
	// value-streams at all means one delivery to the fallback channel.
	targets := make([]string, 0, len(issue.Classifications))
	for _, label := range issue.Classifications {
		targets = append(targets, uc.channels.Route(label))
	}
	if len(targets) == 0 {
		targets = append(targets, uc.channels.Primary)
	}

	result := &model.FanoutResult{}
	for _, channelID := range targets {
		message, err := uc.renderer.Render("adr_published", []model.TemplateVar{
			{Token: "%KEY%", Value: issue.Key},
			{Token: "%STATUS%", Value: issue.DecisionStatus},
			{Token: "%AUTHOR%", Value: assignee},
			{Token: "%VS_IMPACTED%", Value: joined},
			{Token: "%SUMMARY%", Value: issue.Summary},
			{Token: "%LINK%", Value: browseURL(uc.rootURL, issue.Key)},
		})
		if err != nil {
			// A broken template fails every target the same way
			return nil, err
		}

		if err := uc.slack.PostBlocks(ctx, channelID, message, "ADR Published"); err != nil {
			logger.Warn("Failed to deliver ADR notification",
				"key", issue.Key,
				"channel", channelID,
				"error", err,
			)
			uc.metrics.PublishFailures.WithLabelValues("adr").Inc()
			result.Failures = append(result.Failures, model.TargetFailure{Target: channelID, Err: err})
			continue
		}
		uc.metrics.MessagesPosted.WithLabelValues("adr").Inc()
		result.Sent++
	}

	logger.Info("Published decision record",
		"key", issue.Key,
		"value_streams", joined,
		"sent", result.Sent,
		"failed", len(result.Failures),
	)

	return result, nil
}

// joinValueStreams builds the display string of impacted value-streams
func joinValueStreams(labels []string) string {
	if len(labels) == 0 {
		return model.NoValueStreams
	}
	return strings.Join(labels, ",")
}
