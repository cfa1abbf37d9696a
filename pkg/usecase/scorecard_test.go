package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/usecase"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

func TestScorecard_AllTopics(t *testing.T) {
	tracker := &mockTracker{
		searchFunc: func(ctx context.Context, filterID string) ([]model.Issue, error) {
			switch filterID {
			case "20001":
				return []model.Issue{
					{Key: "OBJ-1", Summary: "Improve onboarding", Assignee: "Alice Smith", Status: "In Progress"},
					{Key: "OBJ-2", Summary: "Reduce churn", Assignee: "Bob Jones", Status: "Open"},
				}, nil
			case "20002":
				return []model.Issue{
					{Key: "OBJ-3", Summary: "Cut alert noise", Assignee: "Carol White", Status: "Done"},
				}, nil
			}
			return nil, errors.New("unexpected filter")
		},
	}
	slack := &mockSlack{}

	uc := usecase.NewScorecard(tracker, slack, &fakeRenderer{}, testChannelMap(), testRootURL, metrics.New())
	result, err := uc.PublishScorecard(context.Background())
	gt.NoError(t, err)

	// Two headers and three items, queried in topic order
	gt.Equal(t, result.Sent, 5)
	gt.Number(t, len(result.Failures)).Equal(0)
	gt.Equal(t, tracker.searchCalls, []string{"20001", "20002"})

	gt.Number(t, len(slack.posts)).Equal(5)
	for _, p := range slack.posts {
		gt.Equal(t, p.Channel, "C-SCORECARD")
		gt.Equal(t, p.Fallback, "Scorecard Progress Update")
	}
	gt.String(t, slack.posts[0].Content).Contains("Customer Obsession")
	gt.String(t, slack.posts[1].Content).Contains("OBJ-1")
	gt.String(t, slack.posts[1].Content).Contains(testRootURL + "/browse/OBJ-1")
	gt.String(t, slack.posts[2].Content).Contains("OBJ-2")
	gt.String(t, slack.posts[3].Content).Contains("Operational Excellence")
	gt.String(t, slack.posts[4].Content).Contains("OBJ-3")
}

func TestScorecard_TopicFailureIsIsolated(t *testing.T) {
	tracker := &mockTracker{
		searchFunc: func(ctx context.Context, filterID string) ([]model.Issue, error) {
			if filterID == "20001" {
				return nil, errors.New("filter deleted")
			}
			return []model.Issue{
				{Key: "OBJ-3", Summary: "Cut alert noise", Assignee: "Carol White", Status: "Done"},
			}, nil
		},
	}
	slack := &mockSlack{}

	uc := usecase.NewScorecard(tracker, slack, &fakeRenderer{}, testChannelMap(), testRootURL, metrics.New())
	result, err := uc.PublishScorecard(context.Background())
	gt.NoError(t, err)

	// First topic failed, second still published header + item
	gt.Equal(t, result.Sent, 2)
	gt.Number(t, len(result.Failures)).Equal(1)
	gt.Equal(t, result.Failures[0].Target, "Customer Obsession")
	gt.Number(t, len(slack.posts)).Equal(2)
}

func TestScorecard_AllTopicsFail(t *testing.T) {
	tracker := &mockTracker{
		searchFunc: func(ctx context.Context, filterID string) ([]model.Issue, error) {
			return nil, errors.New("tracker down")
		},
	}
	slack := &mockSlack{}

	uc := usecase.NewScorecard(tracker, slack, &fakeRenderer{}, testChannelMap(), testRootURL, metrics.New())
	result, err := uc.PublishScorecard(context.Background())
	gt.NoError(t, err)

	gt.True(t, result.AllFailed())
	gt.Number(t, len(result.Failures)).Equal(2)
	gt.Number(t, len(slack.posts)).Equal(0)
}

func TestScorecard_UnassignedTask(t *testing.T) {
	tracker := &mockTracker{
		searchFunc: func(ctx context.Context, filterID string) ([]model.Issue, error) {
			if filterID != "20001" {
				return nil, nil
			}
			return []model.Issue{{Key: "OBJ-9", Summary: "Orphan task", Status: "Open"}}, nil
		},
	}
	slack := &mockSlack{}

	uc := usecase.NewScorecard(tracker, slack, &fakeRenderer{}, testChannelMap(), testRootURL, metrics.New())
	_, err := uc.PublishScorecard(context.Background())
	gt.NoError(t, err)
	gt.String(t, slack.posts[1].Content).Contains("%NAME%=Unassigned")
}
