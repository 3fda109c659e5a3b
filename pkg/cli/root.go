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

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arctl/pkg/defaults"
	"github.com/NVIDIA/arctl/pkg/errors"
	"github.com/NVIDIA/arctl/pkg/logging"
	"github.com/NVIDIA/arctl/pkg/runner"
)

const (
	name           = "arctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Engine is the part of the runner the commands depend on.
type Engine interface {
	Run(ctx context.Context, cfg runner.RunConfig) (*runner.Result, error)
	RunCommand(ctx context.Context, c runner.Command) (*runner.CommandResult, error)
}

// EngineFactory builds the Engine once global flags have been parsed.
type EngineFactory func(cmd *cli.Command) Engine

func defaultEngine(cmd *cli.Command) Engine {
	return runner.New(runner.WithExecutable(cmd.String("executable")))
}

// Execute runs the root command with the process arguments and exits with
// the status derived from its error. It is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, stopping the engine...")
			cancel()
		case <-ctx.Done():
		}
	}()

	cmd := newRootCmd(defaultEngine)
	if err := cmd.Run(ctx, os.Args); err != nil {
		code := exitCode(err)
		if msg := err.Error(); msg != "" {
			printError(os.Stderr, msg)
		}
		cancel()
		os.Exit(code)
	}
}

func newRootCmd(newEngine EngineFactory) *cli.Command {
	var engine Engine
	lazy := func(cmd *cli.Command) Engine {
		if engine == nil {
			engine = newEngine(cmd)
		}
		return engine
	}

	return &cli.Command{
		Name:                  name,
		Usage:                 "Run Ansible playbooks and roles, and bootstrap nodes",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("ARCTL_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "executable",
				Usage:   "Engine binary used to execute playbooks",
				Value:   defaults.Executable,
				Sources: cli.EnvVars("ARCTL_EXECUTABLE"),
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write Prometheus metrics in text format to this file on exit",
				Sources: cli.EnvVars("ARCTL_METRICS_FILE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		After: func(_ context.Context, cmd *cli.Command) error {
			path := cmd.String("metrics-file")
			if path == "" {
				return nil
			}
			if err := runner.WriteMetrics(path); err != nil {
				slog.Warn("failed to write metrics", "path", path, "error", err)
			}
			return nil
		},
		// exit codes are resolved by Execute so the command can run in tests
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			runCmd(lazy),
			initCmd(lazy),
		},
	}
}

// exitCode maps err to a process exit status. Explicit exit codes win, then
// structured error codes; anything else is a general failure.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if stderrors.As(err, &ec) {
		return ec.ExitCode()
	}
	return errors.ExitCode(err)
}

// usageError prints msg and returns an already-reported error carrying code.
func usageError(w io.Writer, code int, msg string) error {
	printError(w, msg)
	return cli.Exit("", code)
}
