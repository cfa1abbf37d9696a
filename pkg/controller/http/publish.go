package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/domain/types"
)

// PublishHandler serves the webhook-triggered publishers
type PublishHandler struct {
	agendaUC    interfaces.AgendaUseCase
	adrUC       interfaces.ADRUseCase
	scorecardUC interfaces.ScorecardUseCase
}

// NewPublishHandler creates a new PublishHandler
func NewPublishHandler(
	agendaUC interfaces.AgendaUseCase,
	adrUC interfaces.ADRUseCase,
	scorecardUC interfaces.ScorecardUseCase,
) *PublishHandler {
	return &PublishHandler{
		agendaUC:    agendaUC,
		adrUC:       adrUC,
		scorecardUC: scorecardUC,
	}
}

// HandleAgenda triggers agenda publishing. The request carries no body.
func (h *PublishHandler) HandleAgenda(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.agendaUC.PublishAgenda(ctx); err != nil {
		ctxlog.From(ctx).Error("Agenda publishing failed", "error", err)
		respondText(w, statusFromError(err), "FAILED")
		return
	}

	respondText(w, http.StatusOK, "OK")
}

// adrRequest is the trigger payload sent by the tracker automation
type adrRequest struct {
	Key string `json:"key"`
}

// HandleADR triggers the decision-record broadcast for one issue key
func (h *PublishHandler) HandleADR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req adrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "Invalid Payload")
		return
	}
	if req.Key == "" {
		respondText(w, http.StatusBadRequest, "No Key Provided")
		return
	}

	result, err := h.adrUC.PublishADR(ctx, req.Key)
	if err != nil {
		logger.Error("ADR publishing failed", "key", req.Key, "error", err)
		respondText(w, statusFromError(err), "FAILED")
		return
	}

	respondFanout(w, result)
}

// HandleScorecard triggers scorecard publishing. The request carries no
// body.
func (h *PublishHandler) HandleScorecard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.scorecardUC.PublishScorecard(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Scorecard publishing failed", "error", err)
		respondText(w, statusFromError(err), "FAILED")
		return
	}

	respondFanout(w, result)
}

// respondFanout maps a fan-out outcome to a plain-text response. Partial
// delivery stays a success: the failed targets are already recorded and
// retrying the whole operation would duplicate the delivered messages.
func respondFanout(w http.ResponseWriter, result *model.FanoutResult) {
	switch {
	case result.AllFailed():
		respondText(w, http.StatusBadGateway, "FAILED")
	case result.Partial():
		respondText(w, http.StatusOK,
			fmt.Sprintf("PARTIAL (%d sent, %d failed)", result.Sent, len(result.Failures)))
	default:
		respondText(w, http.StatusOK, "OK")
	}
}

// statusFromError maps the error taxonomy to HTTP status codes
func statusFromError(err error) int {
	switch {
	case goerr.HasTag(err, types.ErrTagValidation), goerr.HasTag(err, types.ErrTagMissingKey):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.ErrTagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, types.ErrTagTemplateNotFound), goerr.HasTag(err, types.ErrTagPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
