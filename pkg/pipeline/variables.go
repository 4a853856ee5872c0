package pipeline

import (
	"time"

	"github.com/notifykit/notifier/pkg/envelope"
)

// BuildVariables constructs the template variable set from a normalized
// envelope using a three-tier overlay: envelope scaffolding fields first,
// then every top-level payload key except data, then every key inside data.
// Later tiers win on collision, so nested data fields always take
// precedence over scaffolding fields of the same name. Producers place
// fields inconsistently at top level vs. under data; the overlay makes both
// work.
func BuildVariables(env *envelope.Envelope) map[string]any {
	vars := map[string]any{
		"userId":    env.UserID,
		"userEmail": env.UserEmail,
		"userPhone": env.UserPhone,
		"eventType": env.EventType,
		"timestamp": env.Timestamp.Format(time.RFC3339),
	}

	for k, v := range env.Fields {
		vars[k] = v
	}
	for k, v := range env.Data {
		vars[k] = v
	}

	return vars
}
