package outcome

// Kind distinguishes the two audit-facing outcome variants.
type Kind string

const (
	KindSent   Kind = "sent"
	KindFailed Kind = "failed"
)

// Topics the outcome events are published on.
const (
	TopicSent   = "notification.sent"
	TopicFailed = "notification.failed"
)

// Event is the audit-facing record of one delivery attempt's result.
// NotificationID is minted fresh per processing attempt: redelivery of the
// same logical event produces a new id, and AttemptNumber stays 1 since no
// attempt counter is threaded through transport redelivery. Duplicate audit
// records on redelivery are an accepted limitation.
type Event struct {
	Kind              Kind   `json:"kind"`
	NotificationID    string `json:"notificationId"`
	OriginalEventType string `json:"originalEventType"`
	Channel           string `json:"channel"`
	RecipientEmail    string `json:"recipientEmail,omitempty"`
	Subject           string `json:"subject,omitempty"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
	AttemptNumber     int    `json:"attemptNumber"`
	TraceID           string `json:"traceId,omitempty"`
	SpanID            string `json:"spanId,omitempty"`
}

// Delivery carries the identifying details of one dispatch attempt, shared
// by both outcome variants.
type Delivery struct {
	OriginalEventType string
	Channel           string
	RecipientEmail    string
	Subject           string
	TraceID           string
	SpanID            string
}
