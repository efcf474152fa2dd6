// Package logger builds log/slog loggers with functional options and offers
// attribute helpers with stable keys.
//
// New returns a *slog.Logger whose handler is JSON or text, optionally
// decorated with ContextExtractor callbacks that add request-scoped values on
// every call. Values of sensitive attribute keys (DefaultRedactedKeys plus
// anything passed to WithRedactedKeys) are replaced with "[REDACTED]" so that
// an API key or HMAC key logged by mistake never reaches the output.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "billing"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	log.InfoContext(ctx, "api key issued",
//	    logger.KeyID(res.Server.ID),
//	    logger.KeyPrefix("acme_live"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
