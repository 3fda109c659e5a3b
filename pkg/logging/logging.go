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

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvVarLogLevel is consulted when no explicit level is given.
	EnvVarLogLevel = "LOG_LEVEL"

	defaultLevel = slog.LevelInfo
)

// SetDefaultStructuredLoggerWithLevel sets the process-wide slog logger with
// an explicit level. An empty level falls back to LOG_LEVEL.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	if level == "" {
		level = os.Getenv(EnvVarLogLevel)
	}
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewStructuredLogger returns a JSON logger writing to stderr with module
// and version attributes. Debug level adds source locations.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newStructuredLogger(os.Stderr, module, version, level)
}

func newStructuredLogger(w io.Writer, module, version, level string) *slog.Logger {
	lvl := ParseLogLevel(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(handler).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// ParseLogLevel converts a case-insensitive level name into a slog.Level.
// Unknown or empty values yield INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		return defaultLevel
	}
}
