package usecase

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

type agendaUseCase struct {
	tracker  interfaces.IssueTracker
	slack    interfaces.SlackClient
	renderer interfaces.TemplateRenderer
	channels *model.ChannelMap
	filterID string
	rootURL  string
	metrics  *metrics.Metrics
}

// NewAgenda creates the agenda publisher. filterID is the saved tracker
// filter that selects the items for the next review; rootURL is the
// tracker root used for browse links.
func NewAgenda(
	tracker interfaces.IssueTracker,
	slack interfaces.SlackClient,
	renderer interfaces.TemplateRenderer,
	channels *model.ChannelMap,
	filterID string,
	rootURL string,
	m *metrics.Metrics,
) interfaces.AgendaUseCase {
	return &agendaUseCase{
		tracker:  tracker,
		slack:    slack,
		renderer: renderer,
		channels: channels,
		filterID: filterID,
		rootURL:  rootURL,
		metrics:  m,
	}
}

// PublishAgenda posts the review header and one message per agenda item to
// the primary channel. With no items, a cancellation notice follows the
// header instead. Any query or delivery failure aborts the remainder:
// already-posted messages stay posted, nothing is rolled back.
func (uc *agendaUseCase) PublishAgenda(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	issues, err := uc.tracker.SearchFilter(ctx, uc.filterID)
	if err != nil {
		uc.metrics.PublishFailures.WithLabelValues("agenda").Inc()
		return goerr.Wrap(err, "failed to query agenda filter", goerr.V("filter_id", uc.filterID))
	}

	meeting := nextWeekday(time.Now(), time.Wednesday)
	longDate := meeting.Format("2006-01-02")
	humanDate := humanize.Time(meeting)

	header, err := uc.renderer.Render("tda_agenda_header", []model.TemplateVar{
		{Token: "%LONGDATE%", Value: longDate},
		{Token: "%HUMANDATE%", Value: humanDate},
	})
	if err != nil {
		return err
	}
	if err := uc.slack.PostBlocks(ctx, uc.channels.Primary, header, "TDA Agenda: "+longDate); err != nil {
		uc.metrics.PublishFailures.WithLabelValues("agenda").Inc()
		return goerr.Wrap(err, "failed to post agenda header")
	}
	uc.metrics.MessagesPosted.WithLabelValues("agenda").Inc()

	if len(issues) == 0 {
		noItems, err := uc.renderer.Render("tda_agenda_noitems", nil)
		if err != nil {
			return err
		}
		if err := uc.slack.PostBlocks(ctx, uc.channels.Primary, noItems, "TDA Cancelled: "+longDate); err != nil {
			uc.metrics.PublishFailures.WithLabelValues("agenda").Inc()
			return goerr.Wrap(err, "failed to post no-items notice")
		}
		uc.metrics.MessagesPosted.WithLabelValues("agenda").Inc()

		logger.Info("Published empty agenda", "meeting_date", longDate)
		return nil
	}

	// Items go out in query order; the filter owns the sorting
	for _, issue := range issues {
		item, err := uc.renderer.Render("tda_agenda", []model.TemplateVar{
			{Token: "%KEY%", Value: issue.Key},
			{Token: "%AUTHOR%", Value: issue.Creator},
			{Token: "%SUMMARY%", Value: issue.Summary},
			{Token: "%LINK%", Value: browseURL(uc.rootURL, issue.Key)},
		})
		if err != nil {
			return err
		}
		if err := uc.slack.PostBlocks(ctx, uc.channels.Primary, item, "TDA Agenda Item"); err != nil {
			uc.metrics.PublishFailures.WithLabelValues("agenda").Inc()
			return goerr.Wrap(err, "failed to post agenda item", goerr.V("key", issue.Key))
		}
		uc.metrics.MessagesPosted.WithLabelValues("agenda").Inc()
	}

	logger.Info("Published agenda",
		"meeting_date", longDate,
		"item_count", len(issues),
	)

	return nil
}

// nextWeekday returns the next occurrence of the given weekday, counting
// today when it already is that weekday.
func nextWeekday(now time.Time, day time.Weekday) time.Time {
	days := (int(day) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, days)
}

// browseURL builds a tracker browse link for an issue key
func browseURL(rootURL, key string) string {
	return rootURL + "/browse/" + key
}
