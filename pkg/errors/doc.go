// Package errors provides structured error types for better observability
// and programmatic error handling across arctl.
//
// Every error carries an ErrorCode which also determines the process exit
// code reported by the CLI (see ExitCode).
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "engine executable not found",
//	    execErr,
//	    map[string]any{
//	        "executable": "ansible-playbook",
//	    },
//	)
package errors
