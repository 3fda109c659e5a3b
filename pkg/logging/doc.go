// Package logging provides structured logging utilities for arctl.
//
// # Overview
//
// This package wraps the standard library slog package with arctl defaults:
// JSON output on stderr, module and version attributes on every record, and
// source locations when running at debug level. Standard output stays
// reserved for the engine's own output and the run summary.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("arctl", version, "debug")
//	slog.Info("dispatching playbook", "playbook", "site.yml")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no level is
// passed explicitly:
//
//	LOG_LEVEL=debug arctl run -p site.yml
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "run completed",
//	    "module": "arctl",
//	    "version": "v1.0.0",
//	    "status": "successful",
//	    "rc": 0
//	}
package logging
