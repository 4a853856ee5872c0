// Package logger provides a thin factory over log/slog plus typed attribute
// helpers for the attributes this service logs everywhere (event type, topic,
// notification id, provider, trace id).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithService("notifier"),
//	)
//
//	log.LogAttrs(ctx, slog.LevelInfo, "notification dispatched",
//	    logger.EventType("order.created"),
//	    logger.NotificationID(id),
//	)
//
// All attribute helpers return an empty slog.Attr for zero values so callers
// can pass them unconditionally.
package logger
