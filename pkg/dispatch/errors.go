package dispatch

import "errors"

var (
	// ErrInvalidConfig is returned when a sender cannot be constructed
	// from the supplied configuration.
	ErrInvalidConfig = errors.New("dispatch: invalid config")

	// ErrInvalidParams is returned when send parameters fail validation.
	ErrInvalidParams = errors.New("dispatch: invalid send params")

	// ErrFailedToSend is returned when the underlying transport rejects
	// or fails the delivery.
	ErrFailedToSend = errors.New("dispatch: failed to send")

	// ErrNoRecipient signals that no recipient address could be resolved
	// for the notification. Delivery is skipped, not attempted.
	ErrNoRecipient = errors.New("dispatch: no recipient address resolved")

	// ErrDeliveryDisabled signals that delivery is administratively
	// disabled. Delivery is skipped, not attempted.
	ErrDeliveryDisabled = errors.New("dispatch: delivery disabled")

	// ErrUnknownDriver is returned for an unrecognized sender driver name.
	ErrUnknownDriver = errors.New("dispatch: unknown driver")
)
