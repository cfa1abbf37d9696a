package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

type eventUseCase struct {
	store   interfaces.EventStore
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewEvent creates the generic event catcher
func NewEvent(store interfaces.EventStore, m *metrics.Metrics) interfaces.EventUseCase {
	return &eventUseCase{
		store:   store,
		metrics: m,
		now:     time.Now,
	}
}

// Ingest validates the raw payload and persists one event row. The
// timestamp is always server-generated: a client-supplied source_timestamp
// is accepted in the payload but never stored. Nothing is persisted on
// validation failure.
func (uc *eventUseCase) Ingest(ctx context.Context, sourceSystem string, payload []byte) error {
	logger := ctxlog.From(ctx)

	input, err := model.ParseEventInput(payload)
	if err != nil {
		uc.metrics.EventsRejected.Inc()
		return err
	}

	event := &model.Event{
		ID:              uuid.New().String(),
		SourceTimestamp: uc.now().Unix(),
		SourceSystem:    sourceSystem,
		Contributor:     *input.Contributor,
		EventType:       *input.EventType,
	}

	if err := uc.store.InsertEvent(ctx, event); err != nil {
		return err
	}

	uc.metrics.EventsIngested.WithLabelValues(sourceSystem).Inc()
	logger.Info("Ingested event",
		"id", event.ID,
		"source_system", sourceSystem,
		"event_type", event.EventType,
	)

	return nil
}
