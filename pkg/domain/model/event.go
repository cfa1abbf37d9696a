package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govbridge/tdabot/pkg/domain/types"
)

// EventInput is the inbound payload of the generic event catcher. A
// client-supplied source_timestamp is accepted for compatibility but
// ignored: the server always stamps rows itself.
type EventInput struct {
	Contributor     *string `json:"contributor"`
	EventType       *string `json:"event_type"`
	SourceTimestamp *string `json:"source_timestamp,omitempty"`
}

// ParseEventInput decodes and validates a raw event payload. Type
// mismatches surface as decode errors, missing required fields as
// validation errors; both carry ErrTagValidation.
func ParseEventInput(raw []byte) (*EventInput, error) {
	var input EventInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, goerr.Wrap(err, "invalid event payload", goerr.T(types.ErrTagValidation))
	}

	if input.Contributor == nil || *input.Contributor == "" {
		return nil, goerr.New("contributor is required", goerr.T(types.ErrTagValidation))
	}
	if input.EventType == nil || *input.EventType == "" {
		return nil, goerr.New("event_type is required", goerr.T(types.ErrTagValidation))
	}

	return &input, nil
}

// Event is a persisted contribution event. Rows are insert-only: never
// updated or deleted by this system.
type Event struct {
	ID              string `db:"id"`
	SourceTimestamp int64  `db:"source_timestamp"` // Unix seconds, server-generated
	SourceSystem    string `db:"source_system"`    // Derived from the route path
	Contributor     string `db:"contributor"`
	EventType       string `db:"event_type"`
}
