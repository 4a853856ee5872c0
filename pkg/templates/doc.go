// Package templates provides the static notification template catalog,
// placeholder rendering, and the basic-notification fallback used when no
// template matches an event.
//
// Templates are keyed by (event type, channel) and registered once at
// process start, either programmatically or from a YAML catalog. The
// embedded default catalog covers the standard domain event set.
//
// Rendering substitutes {{name}}-style placeholders with values from a
// variable map. Unmatched placeholders are deliberately left verbatim so
// an incomplete variable set produces visible-but-ugly text rather than
// silently dropping data.
package templates
