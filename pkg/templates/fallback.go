package templates

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallback synthesizes a human-readable notification for event types with
// no registered template. The subject is the event type with each dot
// segment capitalized and space-joined; the body is that label followed by
// a pretty-printed dump of the event data, or just the label when the data
// is empty.
func Fallback(eventType string, data map[string]any) Rendered {
	label := EventTypeLabel(eventType)

	body := label
	if len(data) > 0 {
		if pretty, err := json.MarshalIndent(data, "", "  "); err == nil {
			body = label + "\n\n" + string(pretty)
		}
	}

	return Rendered{
		Subject: label,
		Body:    body,
	}
}

// EventTypeLabel converts a dotted event type into a display label:
// "auth.user.registered" becomes "Auth User Registered".
//
// A cases.Caser is stateful and not safe for concurrent use, so a fresh
// one is built per call instead of shared at package level.
func EventTypeLabel(eventType string) string {
	caser := cases.Title(language.English)
	segments := strings.Split(eventType, ".")
	for i, seg := range segments {
		segments[i] = caser.String(seg)
	}
	return strings.Join(segments, " ")
}
