package jira

import "encoding/json"

// searchResponse is the response from GET /rest/api/2/search
type searchResponse struct {
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Total      int        `json:"total"`
	Issues     []rawIssue `json:"issues"`
}

// rawIssue is a single issue as returned by the REST API. Fields is kept
// raw so custom fields can be extracted by their configured IDs alongside
// the typed standard fields.
type rawIssue struct {
	ID     string          `json:"id"`
	Key    string          `json:"key"`
	Fields json.RawMessage `json:"fields"`
}

// standardFields covers the non-custom fields the publishers use
type standardFields struct {
	Summary  string `json:"summary"`
	Status   status `json:"status"`
	Creator  *user  `json:"creator"`
	Assignee *user  `json:"assignee"`
}

// status is the workflow status of an issue
type status struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// user is a Jira user reference
type user struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// optionValue is the shape of a single-select custom field value
type optionValue struct {
	Value string `json:"value"`
}

// errorResponse is the standard Jira error response format
type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
