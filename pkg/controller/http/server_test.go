package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	controller "github.com/govbridge/tdabot/pkg/controller/http"
	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/domain/types"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

const testAPIKey = "test-api-key"

type stubAgenda struct {
	err   error
	calls int
}

func (s *stubAgenda) PublishAgenda(ctx context.Context) error {
	s.calls++
	return s.err
}

type stubADR struct {
	result *model.FanoutResult
	err    error
	keys   []string
}

func (s *stubADR) PublishADR(ctx context.Context, issueKey string) (*model.FanoutResult, error) {
	s.keys = append(s.keys, issueKey)
	return s.result, s.err
}

type stubScorecard struct {
	result *model.FanoutResult
	err    error
}

func (s *stubScorecard) PublishScorecard(ctx context.Context) (*model.FanoutResult, error) {
	return s.result, s.err
}

type stubEvent struct {
	err      error
	sources  []string
	payloads [][]byte
}

func (s *stubEvent) Ingest(ctx context.Context, sourceSystem string, payload []byte) error {
	s.sources = append(s.sources, sourceSystem)
	s.payloads = append(s.payloads, payload)
	return s.err
}

type stubs struct {
	agenda    *stubAgenda
	adr       *stubADR
	scorecard *stubScorecard
	event     *stubEvent
}

func newTestServer(t *testing.T, s *stubs) *controller.Server {
	t.Helper()
	server, err := controller.NewServer(
		context.Background(),
		s.agenda,
		s.adr,
		s.scorecard,
		s.event,
		metrics.New(),
		controller.WithAddr("localhost:0"),
		controller.WithAPIKey(testAPIKey),
	)
	gt.NoError(t, err)
	return server
}

func defaultStubs() *stubs {
	return &stubs{
		agenda:    &stubAgenda{},
		adr:       &stubADR{result: &model.FanoutResult{Sent: 1}},
		scorecard: &stubScorecard{result: &model.FanoutResult{Sent: 3}},
		event:     &stubEvent{},
	}
}

func doRequest(server *controller.Server, method, path, apiKey string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	return w
}

func TestServer_APIKeyRequired(t *testing.T) {
	server := newTestServer(t, defaultStubs())

	tests := []struct {
		name     string
		key      string
		wantCode int
	}{
		{name: "valid key", key: testAPIKey, wantCode: http.StatusOK},
		{name: "wrong key", key: "wrong", wantCode: http.StatusUnauthorized},
		{name: "missing key", key: "", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(server, http.MethodPost, "/hooks/publish/agenda", tt.key, nil)
			gt.Equal(t, w.Code, tt.wantCode)
		})
	}
}

func TestServer_PublishAgenda(t *testing.T) {
	s := defaultStubs()
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/hooks/publish/agenda", testAPIKey, nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Body.String(), "OK")
	gt.Equal(t, s.agenda.calls, 1)
}

func TestServer_PublishAgenda_UpstreamFailure(t *testing.T) {
	s := defaultStubs()
	s.agenda.err = goerr.New("tracker down", goerr.T(types.ErrTagUpstream))
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/hooks/publish/agenda", testAPIKey, nil)
	gt.Equal(t, w.Code, http.StatusBadGateway)
	gt.Equal(t, w.Body.String(), "FAILED")
}

func TestServer_PublishADR(t *testing.T) {
	s := defaultStubs()
	s.adr.result = &model.FanoutResult{Sent: 2}
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/hooks/publish/adr", testAPIKey, []byte(`{"key":"ARCH-42"}`))
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Body.String(), "OK")
	gt.Equal(t, s.adr.keys, []string{"ARCH-42"})
}

func TestServer_PublishADR_NoKey(t *testing.T) {
	s := defaultStubs()
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/hooks/publish/adr", testAPIKey, []byte(`{}`))
	gt.Equal(t, w.Code, http.StatusBadRequest)
	gt.Equal(t, w.Body.String(), "No Key Provided")
	gt.Number(t, len(s.adr.keys)).Equal(0)
}

func TestServer_PublishADR_UnknownKey(t *testing.T) {
	s := defaultStubs()
	s.adr.result = nil
	s.adr.err = goerr.New("issue not found", goerr.T(types.ErrTagNotFound))
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/hooks/publish/adr", testAPIKey, []byte(`{"key":"NOPE-1"}`))
	gt.Equal(t, w.Code, http.StatusNotFound)
}

func TestServer_PublishADR_PartialDelivery(t *testing.T) {
	s := defaultStubs()
	s.adr.result = &model.FanoutResult{
		Sent:     1,
		Failures: []model.TargetFailure{{Target: "C-MORT", Err: errors.New("archived")}},
	}
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/hooks/publish/adr", testAPIKey, []byte(`{"key":"ARCH-42"}`))
	gt.Equal(t, w.Code, http.StatusOK)
	gt.String(t, w.Body.String()).Contains("PARTIAL")
}

func TestServer_PublishScorecard_TotalFailure(t *testing.T) {
	s := defaultStubs()
	s.scorecard.result = &model.FanoutResult{
		Failures: []model.TargetFailure{{Target: "Customer Obsession", Err: errors.New("down")}},
	}
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/hooks/publish/scorecard", testAPIKey, nil)
	gt.Equal(t, w.Code, http.StatusBadGateway)
	gt.Equal(t, w.Body.String(), "FAILED")
}

func TestServer_CatchEvent(t *testing.T) {
	s := defaultStubs()
	server := newTestServer(t, s)

	payload := []byte(`{"contributor":"a@b.com","event_type":"signup"}`)
	w := doRequest(server, http.MethodPost, "/events/web", testAPIKey, payload)
	gt.Equal(t, w.Code, http.StatusCreated)
	gt.Equal(t, w.Body.String(), "Accepted")

	// The source system comes from the route path
	gt.Equal(t, s.event.sources, []string{"web"})
	gt.Equal(t, string(s.event.payloads[0]), string(payload))
}

func TestServer_CatchEvent_ValidationFailure(t *testing.T) {
	s := defaultStubs()
	s.event.err = goerr.New("event_type is required", goerr.T(types.ErrTagValidation))
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/events/web", testAPIKey, []byte(`{"contributor":"a@b.com"}`))
	gt.Equal(t, w.Code, http.StatusBadRequest)
	gt.String(t, w.Body.String()).Contains("Validation Errors")
}

func TestServer_CatchEvent_PersistenceFailure(t *testing.T) {
	s := defaultStubs()
	s.event.err = goerr.New("disk full", goerr.T(types.ErrTagPersistence))
	server := newTestServer(t, s)

	w := doRequest(server, http.MethodPost, "/events/web", testAPIKey, []byte(`{"contributor":"a@b.com","event_type":"x"}`))
	gt.Equal(t, w.Code, http.StatusInternalServerError)
	gt.Equal(t, w.Body.String(), "FAILED")
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, defaultStubs())

	// No API key needed
	w := doRequest(server, http.MethodGet, "/health", "", nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.Status, "healthy")
	gt.Equal(t, status.Service, "tdabot")
}

func TestServer_Metrics(t *testing.T) {
	server := newTestServer(t, defaultStubs())

	w := doRequest(server, http.MethodGet, "/metrics", "", nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.String(t, w.Body.String()).Contains("go_goroutines")
}
