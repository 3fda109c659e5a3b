// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a file, directory or executable was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidRequest indicates malformed or conflicting input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeConflict indicates mutually exclusive options were combined.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeTimeout indicates the engine exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeCanceled indicates the run was interrupted.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an internal failure, including engine start errors.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// exitCodes maps error codes to process exit codes.
// Codes not listed exit with 1.
var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidRequest: 2,
	ErrCodeConflict:       2,
	ErrCodeNotFound:       127,
	ErrCodeTimeout:        124,
	ErrCodeCanceled:       130,
}

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code associated with the error code.
func (e *StructuredError) ExitCode() int {
	if code, ok := exitCodes[e.Code]; ok {
		return code
	}
	return 1
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or an empty code when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ExitCode returns the process exit code for err: 0 for nil, the mapped
// code for a StructuredError anywhere in the chain, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.ExitCode()
	}
	return 1
}
