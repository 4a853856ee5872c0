package templates

import "errors"

var (
	// ErrInvalidTemplate is returned when registering a template with a
	// missing event type or unknown channel.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrInvalidCatalog is returned when a YAML catalog cannot be parsed
	// or contains invalid entries.
	ErrInvalidCatalog = errors.New("invalid template catalog")
)
