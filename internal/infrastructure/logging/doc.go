// Package logging provides structured logging for cartool.
//
// It wraps log/slog so every component logs the same way:
//
//   - JSON output by default, text for development
//   - service and version fields on every entry
//   - level filtering (debug, info, warn, error)
//
// Configuration:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Never log JWT secrets, tokens or broker passwords.
package logging
