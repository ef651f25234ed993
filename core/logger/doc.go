// Package logger provides a structured logging facility based on Zap.
//
// Every diagnostic of the filter goes through it: startup success (identifier
// count and load duration), fatal startup failures, non-fatal reload failures,
// reload-busy notices and the shutdown notice.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to
// the log entry, so all logs related to one request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Configuration loaded", zap.Int("count", n))
package logger
