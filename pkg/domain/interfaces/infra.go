package interfaces

import (
	"context"

	"github.com/govbridge/tdabot/pkg/domain/model"
)

// SlackClient defines the chat delivery capability. Content is the raw
// rendered message document (Block Kit JSON); fallback is the plain-text
// notification string.
type SlackClient interface {
	PostBlocks(ctx context.Context, channelID string, content string, fallback string) error
}

// IssueTracker defines read access to the issue tracker
type IssueTracker interface {
	// SearchFilter runs a saved filter by ID and returns the matching
	// issues in the order the tracker returned them
	SearchFilter(ctx context.Context, filterID string) ([]model.Issue, error)

	// GetIssue fetches a single issue by key. Returns an error tagged
	// with ErrTagNotFound when the key does not exist.
	GetIssue(ctx context.Context, key string) (*model.Issue, error)
}

// EventStore persists contribution events
type EventStore interface {
	InsertEvent(ctx context.Context, event *model.Event) error
	Close() error
}

// TemplateRenderer loads a named template and substitutes variables
type TemplateRenderer interface {
	Render(name string, vars []model.TemplateVar) (string, error)
}
