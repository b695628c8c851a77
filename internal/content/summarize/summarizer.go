// Package summarize defines the Document Summarizer capability and its HTTP client.
package summarize

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no summarizer endpoint is set; PDF
// processing fails (record → failed) rather than silently completing.
var ErrNotConfigured = errors.New("summarize: no summarizer endpoint configured")

// Summarizer produces a text summary for a stored artifact. Consumed as an
// opaque external capability; failures become ProcessingErrors recorded on
// the content record, never surfaced to the uploader.
type Summarizer interface {
	Summarize(ctx context.Context, path string) (string, error)
}
