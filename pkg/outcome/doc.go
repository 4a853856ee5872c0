// Package outcome builds and publishes the audit-facing result of every
// delivery attempt: notification.sent for accepted deliveries and
// notification.failed for everything else, including deliveries that were
// skipped because no recipient was resolvable or delivery was disabled.
//
// Outcome publication is best-effort. A publish failure is logged and
// reported as false but never surfaces to the pipeline - whether the audit
// trail has a gap does not change what happened to the notification.
package outcome
