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

package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"al.essio.dev/pkg/shellescape"

	"github.com/NVIDIA/arctl/pkg/defaults"
	"github.com/NVIDIA/arctl/pkg/errors"
)

// RunCommand executes c with its standard streams bound, streaming the
// engine's output to c.Stdout/c.Stderr while capturing it.
//
// A non-zero exit is reported in CommandResult.RC with a nil error.
// When ctx ends before the engine finishes, the partial result is returned
// with RC set to RCInterrupted and a TIMEOUT or CANCELED error.
func (r *Runner) RunCommand(ctx context.Context, c Command) (*CommandResult, error) {
	c = r.withDefaults(c)

	cmd := exec.CommandContext(ctx, c.Executable, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.WaitDelay = r.waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdin = c.Stdin
	cmd.Stdout = io.MultiWriter(c.Stdout, &stdout)
	cmd.Stderr = io.MultiWriter(c.Stderr, &stderr)

	line := shellescape.QuoteCommand(append([]string{c.Executable}, c.Args...))
	slog.Debug("executing engine command", "command", line, "dir", c.Dir)

	start := time.Now()
	runErr := cmd.Run()
	commandDuration.WithLabelValues(c.Executable).Observe(time.Since(start).Seconds())

	res := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.RC = cmd.ProcessState.ExitCode()
	}

	if runErr == nil {
		commandTotal.WithLabelValues(c.Executable, outcomeFor(res.RC)).Inc()
		return res, nil
	}

	// A real exit status wins over the context state; only a signal kill
	// (ExitCode -1) can be the result of the context ending.
	var exitErr *exec.ExitError
	if stderrors.As(runErr, &exitErr) && exitErr.ExitCode() != -1 {
		res.RC = exitErr.ExitCode()
		commandTotal.WithLabelValues(c.Executable, outcomeFor(res.RC)).Inc()
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.RC = RCInterrupted
		code := errors.ErrCodeCanceled
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			code = errors.ErrCodeTimeout
		}
		commandTotal.WithLabelValues(c.Executable, string(code)).Inc()
		return res, errors.WrapWithContext(code, "engine command interrupted", ctxErr,
			map[string]any{"command": line})
	}

	// Killed by a signal arctl did not send.
	if exitErr != nil {
		res.RC = exitErr.ExitCode()
		commandTotal.WithLabelValues(c.Executable, outcomeFor(res.RC)).Inc()
		return res, nil
	}

	// The engine exited but left its output pipes open past WaitDelay.
	if stderrors.Is(runErr, exec.ErrWaitDelay) {
		slog.Warn("engine output pipes outlived the process", "command", line)
		commandTotal.WithLabelValues(c.Executable, outcomeFor(res.RC)).Inc()
		return res, nil
	}

	commandTotal.WithLabelValues(c.Executable, "error").Inc()
	if stderrors.Is(runErr, exec.ErrNotFound) || stderrors.Is(runErr, fs.ErrNotExist) {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "engine executable not found", runErr,
			map[string]any{"executable": c.Executable})
	}
	return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to execute engine command", runErr,
		map[string]any{"command": line})
}

func (r *Runner) withDefaults(c Command) Command {
	if c.Executable == "" {
		c.Executable = r.executable
	}
	if len(c.Args) == 0 {
		c.Args = []string{defaults.Playbook}
	}
	if c.Stdin == nil {
		c.Stdin = r.stdin
	}
	if c.Stdout == nil {
		c.Stdout = r.stdout
	}
	if c.Stderr == nil {
		c.Stderr = r.stderr
	}
	return c
}

func outcomeFor(rc int) string {
	if rc == 0 {
		return "success"
	}
	return "failure"
}
