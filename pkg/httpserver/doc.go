// Package httpserver runs an http.Server with context-driven graceful
// shutdown so the push surface composes with the other long-running parts
// of the service:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	err := srv.Run(ctx, router) // blocks until ctx is cancelled
//
// Cancelling the context drains in-flight requests, bounded by the
// configured shutdown timeout.
package httpserver
