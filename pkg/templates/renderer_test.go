package templates_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notifykit/notifier/pkg/templates"
)

func TestRender_Substitution(t *testing.T) {
	t.Parallel()

	tmpl := templates.Template{
		Subject: "Order {{orderId}} confirmed",
		Body:    "Hi {{firstName}}, your total is {{total}}.",
	}
	vars := map[string]any{
		"orderId":   "ORD-7",
		"firstName": "Al",
		"total":     42.5,
	}

	out := templates.Render(tmpl, vars)
	assert.Equal(t, "Order ORD-7 confirmed", out.Subject)
	assert.Equal(t, "Hi Al, your total is 42.5.", out.Body)
}

func TestRender_UnmatchedPlaceholdersSurviveVerbatim(t *testing.T) {
	t.Parallel()

	tmpl := templates.Template{Body: "Hi {{missingVar}}"}
	out := templates.Render(tmpl, map[string]any{})
	assert.Equal(t, "Hi {{missingVar}}", out.Body)
}

func TestRender_NilValuesBecomeEmptyString(t *testing.T) {
	t.Parallel()

	tmpl := templates.Template{Body: "Value: [{{v}}]"}
	out := templates.Render(tmpl, map[string]any{"v": nil})
	assert.Equal(t, "Value: []", out.Body)
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	tmpl := templates.Template{
		Subject: "{{a}} and {{b}}",
		Body:    "{{a}} {{missing}} {{b}}",
	}
	vars := map[string]any{"a": "one", "b": 2}

	first := templates.Render(tmpl, vars)
	second := templates.Render(tmpl, vars)
	assert.Equal(t, first, second)
}

func TestRender_WhitespaceInsidePlaceholders(t *testing.T) {
	t.Parallel()

	tmpl := templates.Template{Body: "Hello {{ name }}"}
	out := templates.Render(tmpl, map[string]any{"name": "World"})
	assert.Equal(t, "Hello World", out.Body)
}

func TestRender_RepeatedPlaceholder(t *testing.T) {
	t.Parallel()

	tmpl := templates.Template{Body: "{{x}}-{{x}}-{{x}}"}
	out := templates.Render(tmpl, map[string]any{"x": "a"})
	assert.Equal(t, "a-a-a", out.Body)
}

func TestFallback(t *testing.T) {
	t.Parallel()

	t.Run("subject is capitalized space-joined event type", func(t *testing.T) {
		t.Parallel()

		out := templates.Fallback("auth.user.registered", nil)
		assert.Equal(t, "Auth User Registered", out.Subject)
		assert.Equal(t, "Auth User Registered", out.Body)
	})

	t.Run("body includes pretty-printed data", func(t *testing.T) {
		t.Parallel()

		out := templates.Fallback("order.created", map[string]any{"orderId": "ORD-1"})
		assert.Equal(t, "Order Created", out.Subject)
		assert.Contains(t, out.Body, "Order Created")
		assert.Contains(t, out.Body, `"orderId": "ORD-1"`)
	})

	t.Run("never returns an empty subject", func(t *testing.T) {
		t.Parallel()

		out := templates.Fallback("x", nil)
		assert.NotEmpty(t, out.Subject)
	})
}

func TestFallback_ConcurrentUse(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				out := templates.Fallback("auth.user.registered", nil)
				assert.Equal(t, "Auth User Registered", out.Subject)
			}
		}()
	}
	wg.Wait()
}

func TestEventTypeLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Payment Failed", templates.EventTypeLabel("payment.failed"))
	assert.Equal(t, "Ping", templates.EventTypeLabel("ping"))
}
