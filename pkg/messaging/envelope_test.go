package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEnvelope_IDDefaultsToCorrelationID(t *testing.T) {
	t.Parallel()

	env := NewEnvelope("order.created", "notifier", map[string]any{"a": 1},
		applyPublishOptions([]PublishOption{WithCorrelationID("corr-1")}))

	assert.Equal(t, "corr-1", env.ID)
	assert.Equal(t, "corr-1", env.CorrelationID)
}

func TestNewEnvelope_GeneratesIDWithoutCorrelation(t *testing.T) {
	t.Parallel()

	env := NewEnvelope("order.created", "notifier", nil, applyPublishOptions(nil))

	assert.NotEmpty(t, env.ID)
	assert.Empty(t, env.CorrelationID)
}

func TestNewEnvelope_Defaults(t *testing.T) {
	t.Parallel()

	env := NewEnvelope("notification.sent", "notifier", map[string]any{"x": "y"},
		applyPublishOptions(nil))

	assert.Equal(t, SpecVersion, env.SpecVersion)
	assert.Equal(t, "notification.sent", env.Type)
	assert.Equal(t, "notifier", env.Source)
	assert.Equal(t, "application/json", env.ContentType)
	assert.False(t, env.Time.IsZero())
}

func TestAttachType(t *testing.T) {
	t.Parallel()

	t.Run("adds routing key as type", func(t *testing.T) {
		t.Parallel()

		out := attachType([]byte(`{"data":{"a":1}}`), "order.created")
		assert.Contains(t, string(out), `"type":"order.created"`)
	})

	t.Run("existing type preserved", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"type":"payment.failed"}`)
		out := attachType(body, "order.created")
		assert.Equal(t, body, out)
	})

	t.Run("non-object body unchanged", func(t *testing.T) {
		t.Parallel()

		body := []byte(`not json`)
		assert.Equal(t, body, attachType(body, "order.created"))
	})
}
