package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/domain/types"
)

// FieldConfig names the custom fields the publishers read. The IDs differ
// per Jira instance, so they are configuration, not constants.
type FieldConfig struct {
	// DecisionStatus is the single-select field holding the governance
	// sign-off state (e.g. "customfield_10241")
	DecisionStatus string

	// Classification is the multi-select field listing impacted
	// value-streams (e.g. "customfield_10383")
	Classification string
}

type client struct {
	baseURL    string
	username   string
	token      string
	fields     FieldConfig
	httpClient *http.Client
}

// NewClient creates a Jira REST API v2 client with basic authentication.
// baseURL is the root of the Jira instance; it doubles as the root for
// browse links built by the publishers.
func NewClient(baseURL, username, token string, fields FieldConfig) interfaces.IssueTracker {
	return &client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		token:    token,
		fields:   fields,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchFilter runs a saved filter by ID and returns the matching issues
// in the order the tracker returned them.
func (c *client) SearchFilter(ctx context.Context, filterID string) ([]model.Issue, error) {
	jql := fmt.Sprintf("filter = %s", filterID)
	path := "/rest/api/2/search?jql=" + url.QueryEscape(jql)

	var resp searchResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to search filter", goerr.V("filter_id", filterID))
	}

	issues := make([]model.Issue, 0, len(resp.Issues))
	for _, raw := range resp.Issues {
		issue, err := c.toIssue(&raw)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode issue", goerr.V("key", raw.Key))
		}
		issues = append(issues, *issue)
	}

	return issues, nil
}

// GetIssue fetches a single issue by key
func (c *client) GetIssue(ctx context.Context, key string) (*model.Issue, error) {
	var raw rawIssue
	if err := c.get(ctx, "/rest/api/2/issue/"+url.PathEscape(key), &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch issue", goerr.V("key", key))
	}

	issue, err := c.toIssue(&raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode issue", goerr.V("key", key))
	}
	return issue, nil
}

// toIssue maps a raw API issue to the domain model, extracting the
// configured custom fields from the raw fields object.
func (c *client) toIssue(raw *rawIssue) (*model.Issue, error) {
	var std standardFields
	if err := json.Unmarshal(raw.Fields, &std); err != nil {
		return nil, goerr.Wrap(err, "invalid issue fields")
	}

	issue := &model.Issue{
		Key:     raw.Key,
		Summary: std.Summary,
		Status:  std.Status.Name,
	}
	if std.Creator != nil {
		issue.Creator = std.Creator.DisplayName
	}
	if std.Assignee != nil {
		issue.Assignee = std.Assignee.DisplayName
	}

	// Second pass over the fields object for custom fields
	var custom map[string]json.RawMessage
	if err := json.Unmarshal(raw.Fields, &custom); err != nil {
		return nil, goerr.Wrap(err, "invalid issue fields")
	}

	if c.fields.DecisionStatus != "" {
		issue.DecisionStatus = decodeOption(custom[c.fields.DecisionStatus])
	}
	if c.fields.Classification != "" {
		issue.Classifications = decodeOptionList(custom[c.fields.Classification])
	}

	return issue, nil
}

// decodeOption reads a single-select custom field value, returning the
// empty string when the field is null or absent.
func decodeOption(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var opt optionValue
	if err := json.Unmarshal(raw, &opt); err != nil {
		return ""
	}
	return opt.Value
}

// decodeOptionList reads a multi-select custom field value. Both null and
// absent decode to nil: the publishers treat that as "no classifications".
func decodeOptionList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var opts []optionValue
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil
	}
	values := make([]string, 0, len(opts))
	for _, opt := range opts {
		values = append(values, opt.Value)
	}
	return values
}

// get performs an authenticated GET and unmarshals the JSON response
func (c *client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request")
	}
	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.T(types.ErrTagUpstream))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response body", goerr.T(types.ErrTagUpstream))
	}

	if resp.StatusCode == http.StatusNotFound {
		return goerr.New("issue not found", goerr.T(types.ErrTagNotFound))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && len(apiErr.ErrorMessages) > 0 {
			return goerr.New("jira API error",
				goerr.T(types.ErrTagUpstream),
				goerr.V("status", resp.StatusCode),
				goerr.V("messages", strings.Join(apiErr.ErrorMessages, "; ")))
		}
		return goerr.New("unexpected status from jira",
			goerr.T(types.ErrTagUpstream),
			goerr.V("status", resp.StatusCode))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return goerr.Wrap(err, "failed to unmarshal response", goerr.T(types.ErrTagUpstream))
	}

	return nil
}
