// Package messaging provides the provider-agnostic publish/consume
// abstraction the notification pipeline runs on, with four interchangeable
// backends:
//
//   - SidecarProvider forwards envelopes to a local sidecar's HTTP pub/sub
//     facade; inbound events arrive via HTTP push, not Subscribe.
//   - BrokerProvider holds a direct connection to a topic-exchange broker
//     with durable declarations, persistent publishes, and a prefetch-one
//     blocking consumer that requeues on handler failure.
//   - BusProvider publishes to a managed service bus, caching one sender
//     per topic.
//   - MemoryProvider is an in-process bus for tests and local development.
//
// The provider is selected from configuration once at process start;
// Resolve caches a process-wide singleton so concurrent first users share
// one transport handle. Every payload is wrapped in the wire-level Envelope
// before leaving the process, and the envelope id follows the correlation
// id when one is supplied.
//
// Publish failures are logged and surfaced as ErrPublishFailed; callers
// treat outbound publication as best-effort and never abort event
// processing because of it.
package messaging
