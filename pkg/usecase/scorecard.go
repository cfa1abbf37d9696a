package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

type scorecardUseCase struct {
	tracker  interfaces.IssueTracker
	slack    interfaces.SlackClient
	renderer interfaces.TemplateRenderer
	channels *model.ChannelMap
	rootURL  string
	metrics  *metrics.Metrics
}

// NewScorecard creates the scorecard publisher. The topic list and the
// destination channel come from the channel map configuration.
func NewScorecard(
	tracker interfaces.IssueTracker,
	slack interfaces.SlackClient,
	renderer interfaces.TemplateRenderer,
	channels *model.ChannelMap,
	rootURL string,
	m *metrics.Metrics,
) interfaces.ScorecardUseCase {
	return &scorecardUseCase{
		tracker:  tracker,
		slack:    slack,
		renderer: renderer,
		channels: channels,
		rootURL:  rootURL,
		metrics:  m,
	}
}

// PublishScorecard walks the configured topic list in order. Each topic
// runs its saved filter, posts a header, then one item per assigned task
// in query order. Topics are isolated: a failed query or delivery is
// recorded and the remaining topics still run. Within a topic, a failed
// item send abandons the rest of that topic only.
func (uc *scorecardUseCase) PublishScorecard(ctx context.Context) (*model.FanoutResult, error) {
	logger := ctxlog.From(ctx)

	result := &model.FanoutResult{}

	for _, topic := range uc.channels.Topics {
		issues, err := uc.tracker.SearchFilter(ctx, topic.FilterID)
		if err != nil {
			logger.Warn("Scorecard topic query failed",
				"topic", topic.Name,
				"filter_id", topic.FilterID,
				"error", err,
			)
			uc.metrics.PublishFailures.WithLabelValues("scorecard").Inc()
			result.Failures = append(result.Failures, model.TargetFailure{Target: topic.Name, Err: err})
			continue
		}

		header, err := uc.renderer.Render("scorecard_topic", []model.TemplateVar{
			{Token: "%SCORECARD_TOPIC%", Value: topic.Name},
		})
		if err != nil {
			return nil, err
		}
		if err := uc.slack.PostBlocks(ctx, uc.channels.Scorecard, header, "Scorecard Progress Update"); err != nil {
			uc.metrics.PublishFailures.WithLabelValues("scorecard").Inc()
			result.Failures = append(result.Failures, model.TargetFailure{Target: topic.Name, Err: err})
			continue
		}
		uc.metrics.MessagesPosted.WithLabelValues("scorecard").Inc()
		result.Sent++

		for _, issue := range issues {
			assignee := issue.Assignee
			if assignee == "" {
				assignee = "Unassigned"
			}
			item, err := uc.renderer.Render("scorecard_item", []model.TemplateVar{
				{Token: "%NAME%", Value: assignee},
				{Token: "%STATUS%", Value: issue.Status},
				{Token: "%SUMMARY%", Value: issue.Summary},
				{Token: "%LINKURL%", Value: browseURL(uc.rootURL, issue.Key)},
				{Token: "%ISSUEKEY%", Value: issue.Key},
			})
			if err != nil {
				return nil, err
			}
			if err := uc.slack.PostBlocks(ctx, uc.channels.Scorecard, item, "Scorecard Progress Update"); err != nil {
				uc.metrics.PublishFailures.WithLabelValues("scorecard").Inc()
				result.Failures = append(result.Failures, model.TargetFailure{Target: topic.Name, Err: err})
				break
			}
			uc.metrics.MessagesPosted.WithLabelValues("scorecard").Inc()
			result.Sent++
		}
	}

	logger.Info("Published scorecard",
		"topics", len(uc.channels.Topics),
		"sent", result.Sent,
		"failed", len(result.Failures),
	)

	return result, nil
}
