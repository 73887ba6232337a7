// Package logger provides a structured logging facility based on Zap.
//
// Level "debug" selects zap's development preset (ISO8601 timestamps, stack traces on
// warnings); every other level uses the production preset. Format "console" switches to
// colored human readable output, anything else encodes JSON.
//
// # Request Correlation
//
// WithRequestID reads the id stored by the requestid middleware from the Fiber context
// and attaches it to the logger, so every line written for one request can be found
// together.
//
// # Usage
//
//	log, err := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRequestID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
