package messaging

import (
	"time"

	"github.com/google/uuid"
)

// SpecVersion is the wire-level envelope version all providers emit.
const SpecVersion = "1.0"

// Envelope is the wire-level wrapper applied to every payload before it is
// handed to a transport backend.
type Envelope struct {
	SpecVersion   string    `json:"specversion"`
	Type          string    `json:"type"`
	Source        string    `json:"source"`
	ID            string    `json:"id"`
	Time          time.Time `json:"time"`
	ContentType   string    `json:"datacontenttype"`
	Data          any       `json:"data"`
	CorrelationID string    `json:"correlationId,omitempty"`
}

// NewEnvelope wraps data for publication on topic. The envelope id defaults
// to the correlation id when one is provided so idempotency keys carry over
// to the message identity; otherwise a fresh id is generated.
func NewEnvelope(topic, source string, data any, opts publishOptions) Envelope {
	id := opts.correlationID
	if id == "" {
		id = uuid.NewString()
	}

	return Envelope{
		SpecVersion:   SpecVersion,
		Type:          topic,
		Source:        source,
		ID:            id,
		Time:          time.Now().UTC(),
		ContentType:   opts.contentType,
		Data:          data,
		CorrelationID: opts.correlationID,
	}
}
