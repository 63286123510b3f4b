// Package logging provides structured logging for haxomatic.
//
// This package wraps a global zap logger with convenience functions for the
// analysis pipeline. Logging is silent unless a level is requested, either
// through the --log-level flag or the HAXOMATIC_LOG_LEVEL environment
// variable.
//
// # Log Levels
//
//   - Debug: raw byte context around matches, individual match offsets
//   - Info: variant selection, resolved gadget addresses, written artifacts
//   - Warn: null-byte fallbacks, recognized but unsupported builds
//   - Error: run failures
//
// # Structured Logging
//
//	logging.Info("Matched firmware variant",
//	    zap.String("chipset", "BK7231T"),
//	    zap.Int("pattern_version", 1),
//	)
//
// Domain helpers are provided for the common events:
//
//	logging.LogMatches(kind, patternHex, matches)
//	logging.LogGadget(kind, address, alternative)
//	logging.LogRawBytes("payload context", window)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once Initialize has
// returned.
package logging
