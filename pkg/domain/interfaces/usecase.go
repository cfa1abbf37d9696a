package interfaces

import (
	"context"

	"github.com/govbridge/tdabot/pkg/domain/model"
)

// AgendaUseCase publishes the recurring review agenda
type AgendaUseCase interface {
	// PublishAgenda posts the agenda header and one message per agenda
	// item (or a no-items message) to the primary channel
	PublishAgenda(ctx context.Context) error
}

// ADRUseCase broadcasts a published decision record
type ADRUseCase interface {
	// PublishADR fans a decision record out to the channel of every
	// impacted value-stream. Individual delivery failures are collected
	// in the result; siblings are still attempted.
	PublishADR(ctx context.Context, issueKey string) (*model.FanoutResult, error)
}

// ScorecardUseCase publishes per-topic task progress
type ScorecardUseCase interface {
	// PublishScorecard posts a header and task items for every scorecard
	// topic. Topics are independent: a topic failure is recorded and the
	// remaining topics still run.
	PublishScorecard(ctx context.Context) (*model.FanoutResult, error)
}

// EventUseCase validates and persists generic contribution events
type EventUseCase interface {
	// Ingest validates the raw payload and persists one event row. The
	// sourceSystem comes from the route path, never from the payload.
	Ingest(ctx context.Context, sourceSystem string, payload []byte) error
}
