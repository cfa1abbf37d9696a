package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/govbridge/tdabot/pkg/domain/model"
)

// mockTracker is a hand-rolled IssueTracker for tests
type mockTracker struct {
	searchFunc  func(ctx context.Context, filterID string) ([]model.Issue, error)
	getFunc     func(ctx context.Context, key string) (*model.Issue, error)
	searchCalls []string
	getCalls    []string
}

func (m *mockTracker) SearchFilter(ctx context.Context, filterID string) ([]model.Issue, error) {
	m.searchCalls = append(m.searchCalls, filterID)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filterID)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockTracker) GetIssue(ctx context.Context, key string) (*model.Issue, error) {
	m.getCalls = append(m.getCalls, key)
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, errors.New("mock not configured")
}

// postCall records one delivery attempt
type postCall struct {
	Channel  string
	Content  string
	Fallback string
}

// mockSlack records posts and optionally fails selected channels
type mockSlack struct {
	failChannels map[string]error
	posts        []postCall
}

func (m *mockSlack) PostBlocks(ctx context.Context, channelID, content, fallback string) error {
	if err, ok := m.failChannels[channelID]; ok {
		return err
	}
	m.posts = append(m.posts, postCall{Channel: channelID, Content: content, Fallback: fallback})
	return nil
}

// fakeRenderer substitutes every var fully so tests can assert on message
// content without template assets on disk.
type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) Render(name string, vars []model.TemplateVar) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	parts := []string{"tpl:" + name}
	for _, v := range vars {
		parts = append(parts, fmt.Sprintf("%s=%s", v.Token, v.Value))
	}
	return strings.Join(parts, "|"), nil
}

// mockStore records inserted events
type mockStore struct {
	insertErr error
	events    []model.Event
}

func (m *mockStore) InsertEvent(ctx context.Context, event *model.Event) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockStore) Close() error { return nil }

func testChannelMap() *model.ChannelMap {
	return &model.ChannelMap{
		Primary:   "C-PRIMARY",
		Scorecard: "C-SCORECARD",
		Channels: map[string]string{
			"Mortgages":        "C-MORT",
			"Enterprise":       "C-ENT",
			"Platform":         "C-PLAT",
			"Savings":          "C-SAVE",
			"Business Banking": "C-BB",
		},
		Topics: []model.ScorecardTopic{
			{FilterID: "20001", Name: "Customer Obsession"},
			{FilterID: "20002", Name: "Operational Excellence"},
		},
	}
}
