package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so the HTTP layer can map them to status
// codes without inspecting error strings.
var (
	// ErrTagValidation marks a request payload that failed shape validation
	ErrTagValidation = goerr.NewTag("validation_failed")

	// ErrTagMissingKey marks a request missing a required identifier
	ErrTagMissingKey = goerr.NewTag("missing_key")

	// ErrTagNotFound marks an upstream record that does not exist
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagTemplateNotFound marks a missing template asset
	ErrTagTemplateNotFound = goerr.NewTag("template_not_found")

	// ErrTagUpstream marks a tracker/chat transport failure
	ErrTagUpstream = goerr.NewTag("upstream_failure")

	// ErrTagPersistence marks a database failure
	ErrTagPersistence = goerr.NewTag("persistence_failed")
)
