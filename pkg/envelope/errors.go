package envelope

import "errors"

var (
	// ErrNoEventType signals that no event type could be derived from the
	// payload or the subscription topic. Callers should drop the message
	// rather than retry - redelivery of a permanently malformed payload
	// cannot succeed.
	ErrNoEventType = errors.New("no event type derivable from payload or topic")
)
