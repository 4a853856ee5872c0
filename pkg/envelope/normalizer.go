package envelope

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/notifykit/notifier/pkg/logger"
)

// Normalizer extracts a canonical Envelope from the heterogeneous payload
// shapes producers emit. It holds no per-event state and is safe for
// concurrent use.
type Normalizer struct {
	log   *slog.Logger
	newID func() string
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithNormalizerLogger sets the logger used for skip diagnostics.
func WithNormalizerLogger(log *slog.Logger) NormalizerOption {
	return func(n *Normalizer) {
		if log != nil {
			n.log = log
		}
	}
}

// WithIDGenerator overrides the identifier source used when a trace id must
// be synthesized. Intended for tests.
func WithIDGenerator(gen func() string) NormalizerOption {
	return func(n *Normalizer) {
		if gen != nil {
			n.newID = gen
		}
	}
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		log:   slog.Default(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize parses a raw inbound payload and produces a canonical Envelope.
// topic is the subscription topic the payload arrived on; it serves as the
// event type of last resort. When no event type can be established at all,
// Normalize returns ErrNoEventType - a signal to drop the message, not a
// processing failure.
func (n *Normalizer) Normalize(raw []byte, topic string) (*Envelope, error) {
	var payload map[string]any
	if len(raw) > 0 {
		// A non-object body is treated as an empty payload; the topic may
		// still yield an event type.
		_ = json.Unmarshal(raw, &payload)
	}
	return n.NormalizeMap(payload, topic)
}

// NormalizeMap is Normalize for payloads already decoded into a map.
func (n *Normalizer) NormalizeMap(payload map[string]any, topic string) (*Envelope, error) {
	if payload == nil {
		payload = map[string]any{}
	}

	data := unwrapData(payload)

	eventType := firstString(payload, "type", "eventType", "event_type")
	if eventType == "" {
		eventType = firstString(data, "type", "eventType", "event_type")
	}
	if eventType == "" {
		eventType = topic
	}
	if eventType == "" {
		n.log.LogAttrs(context.Background(), slog.LevelWarn, "dropping event with no derivable type",
			logger.Topic(topic),
		)
		return nil, ErrNoEventType
	}

	env := &Envelope{
		EventType: eventType,
		Data:      data,
		Fields:    topLevelFields(payload),
	}

	env.UserID = firstString(payload, "userId", "user_id")
	if env.UserID == "" {
		env.UserID = firstString(data, "userId", "user_id", "email", "username")
	}

	env.UserEmail = firstString(payload, "userEmail", "user_email")
	if env.UserEmail == "" {
		env.UserEmail = firstString(data, "email", "userEmail", "user_email")
	}

	env.UserPhone = firstString(payload, "userPhone", "user_phone")
	if env.UserPhone == "" {
		env.UserPhone = firstString(data, "phone", "userPhone", "user_phone")
	}

	env.Timestamp = extractTimestamp(payload, data)
	env.TraceID, env.SpanID = n.extractTrace(payload, data)

	return env, nil
}

// unwrapData locates the payload-specific fields. Three producer shapes are
// recognized:
//
//	(a) wrapper: real payload under a top-level "data" field
//	(b) legacy:  a further-nested "data" inside (a), detected by the inner
//	    level carrying user-identifying keys
//	(c) flat:    event fields at the top level
func unwrapData(payload map[string]any) map[string]any {
	outer, ok := payload["data"].(map[string]any)
	if !ok {
		// Flat shape: the payload itself is the data.
		return payload
	}

	if inner, ok := outer["data"].(map[string]any); ok {
		if hasAnyKey(inner, "email", "userId", "firstName") {
			return inner
		}
	}
	return outer
}

// extractTrace pulls a W3C-style trace header from the payload root, the
// data section, or a headers sub-object, in that priority order. The second
// dash-separated segment is the trace id and the third the span id. Without
// a trace header the delivery id is used, and failing that a fresh id is
// synthesized; the span id stays empty in both fallback cases.
func (n *Normalizer) extractTrace(payload, data map[string]any) (traceID, spanID string) {
	header := firstString(payload, "traceparent")
	if header == "" {
		header = firstString(data, "traceparent")
	}
	if header == "" {
		if headers, ok := payload["headers"].(map[string]any); ok {
			header = firstString(headers, "traceparent")
		}
	}

	if header != "" {
		parts := strings.Split(header, "-")
		if len(parts) >= 3 {
			return parts[1], parts[2]
		}
	}

	if id := firstString(payload, "id"); id != "" {
		return id, ""
	}
	return n.newID(), ""
}

func extractTimestamp(payload, data map[string]any) time.Time {
	for _, raw := range []string{
		firstString(payload, "time", "timestamp"),
		firstString(data, "time", "timestamp"),
	} {
		if raw == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts
		}
	}
	return time.Now().UTC()
}

// topLevelFields copies every top-level key except "data".
func topLevelFields(payload map[string]any) map[string]any {
	fields := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == "data" {
			continue
		}
		fields[k] = v
	}
	return fields
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func hasAnyKey(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
