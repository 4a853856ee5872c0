package messaging

import "errors"

var (
	// ErrInvalidConfig is returned when a provider cannot be constructed
	// from the supplied configuration.
	ErrInvalidConfig = errors.New("messaging: invalid config")

	// ErrUnknownProvider is returned for an unrecognized provider name.
	ErrUnknownProvider = errors.New("messaging: unknown provider")

	// ErrPublishFailed is returned when the transport rejects or fails a
	// publish. Callers treat it as best-effort failure, never as a reason
	// to abort event processing.
	ErrPublishFailed = errors.New("messaging: publish failed")

	// ErrClosed is returned when operating on a closed provider.
	ErrClosed = errors.New("messaging: provider closed")
)
