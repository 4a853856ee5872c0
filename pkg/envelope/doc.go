// Package envelope normalizes heterogeneous inbound event payloads into a
// single canonical Envelope.
//
// Producers deliver events in at least three shapes: a standard wrapper
// with the payload under "data", a legacy double-nested variant,
// and a flat payload with fields at the top level. The Normalizer accepts
// all of them and guarantees that the resulting Envelope always carries an
// event type (falling back to the subscription topic) and a user id derived
// from the payload's email or username when the producer omitted it.
//
// A payload from which no event type can be derived at all yields
// ErrNoEventType, which callers treat as a skip, not a failure.
package envelope
