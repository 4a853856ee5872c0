// Package dispatch defines the delivery channel boundary: the Sender
// contract for channel transports and the Dispatcher that applies
// recipient and enable-flag preconditions before invoking one.
//
// Four senders are provided:
//   - Postmark, for managed transactional email delivery
//   - SMTP, for direct mail server delivery
//   - DevSender, which writes notifications to disk for local development
//   - DisabledSender, the default when delivery is not configured
//
// All delivery failures stay at this boundary as error returns; the
// processing pipeline converts them into failed outcome events rather than
// letting them abort event processing.
package dispatch
