package envelope

import (
	"time"
)

// Envelope is the canonical internal representation of one inbound event,
// produced by the Normalizer regardless of the shape the producer sent.
type Envelope struct {
	// EventType is a dotted-namespace identifier, e.g. "order.created".
	// Always populated after normalization.
	EventType string

	// UserID identifies the user the event concerns. Derived from the
	// payload's email or username when the producer omitted it.
	UserID string

	// UserEmail and UserPhone are optional contact fields.
	UserEmail string
	UserPhone string

	// Timestamp is the event time as reported by the producer, or the
	// normalization time when absent.
	Timestamp time.Time

	// TraceID and SpanID carry the W3C trace context extracted from the
	// inbound payload. SpanID stays empty when no trace header was found.
	TraceID string
	SpanID  string

	// Data holds the payload-specific fields as an open mapping.
	Data map[string]any

	// Fields holds every top-level key of the raw payload except "data".
	// Kept so template variable construction can overlay producer fields
	// that were placed at the top level instead of under data.
	Fields map[string]any
}
