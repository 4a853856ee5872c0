package dispatch

import "context"

// DisabledSender rejects every delivery with ErrDeliveryDisabled. It is the
// default sender so deployments without delivery credentials record failed
// outcomes instead of crashing or silently dropping notifications.
type DisabledSender struct{}

// Send always returns ErrDeliveryDisabled.
func (DisabledSender) Send(ctx context.Context, params SendParams) error {
	return ErrDeliveryDisabled
}
