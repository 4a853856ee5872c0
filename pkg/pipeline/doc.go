// Package pipeline ties the notification components into the per-event
// processing sequence: normalize the inbound payload, resolve and render a
// template (or fall back to a basic notification), dispatch delivery, and
// publish a sent or failed outcome event.
//
// The Processor is reentrant and invoked concurrently, once per inbound
// delivery. Expected failures - malformed envelopes, template misses,
// delivery errors - are absorbed into skips or failed outcomes; only
// unexpected faults surface to the caller, where the transport layer turns
// them into redelivery.
package pipeline
