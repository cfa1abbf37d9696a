package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/types"
)

// EventHandler serves the generic event catcher
type EventHandler struct {
	eventUC interfaces.EventUseCase
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventUC interfaces.EventUseCase) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// Handle ingests one event. The source system comes from the route path
// ({source}), never from the payload.
func (h *EventHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	source := chi.URLParam(r, "source")

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondText(w, http.StatusBadRequest, "Invalid Payload")
		return
	}
	defer r.Body.Close()

	if err := h.eventUC.Ingest(ctx, source, payload); err != nil {
		if goerr.HasTag(err, types.ErrTagValidation) {
			logger.Warn("Rejected event payload", "source", source, "error", err)
			respondText(w, http.StatusBadRequest, "Validation Errors: "+err.Error())
			return
		}

		logger.Error("Event ingestion failed", "source", source, "error", err)
		respondText(w, http.StatusInternalServerError, "FAILED")
		return
	}

	respondText(w, http.StatusCreated, "Accepted")
}
