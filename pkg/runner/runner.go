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
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/google/uuid"

	"github.com/NVIDIA/arctl/pkg/defaults"
	"github.com/NVIDIA/arctl/pkg/errors"
)

// Runner delegates playbook, role and command execution to the engine.
type Runner struct {
	executable string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	waitDelay  time.Duration
	newIdent   func() string
}

// Option is a functional option for configuring Runner instances.
type Option func(*Runner)

// WithExecutable overrides the engine binary (default ansible-playbook).
func WithExecutable(name string) Option {
	return func(r *Runner) {
		if name != "" {
			r.executable = name
		}
	}
}

// WithStreams binds the engine's standard streams. Nil writers discard
// output; a nil reader gives the engine an empty stdin.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		if stdout == nil {
			stdout = io.Discard
		}
		if stderr == nil {
			stderr = io.Discard
		}
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithWaitDelay bounds how long output pipes may outlive the engine.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.waitDelay = d
	}
}

// New creates a Runner bound to the process's standard streams.
func New(opts ...Option) *Runner {
	r := &Runner{
		executable: defaults.Executable,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		waitDelay:  defaults.CommandWaitDelay,
		newIdent:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a playbook or a role against the private data directory in
// cfg and returns the engine's status and return code.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Playbook == "" && cfg.Role == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "Either playbook or role must be provided.")
	}

	dd, err := openDataDir(cfg.PrivateDataDir)
	if err != nil {
		return nil, err
	}

	inputs, err := dd.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	extraVars, err := mergeExtraVars(inputs.extraVars, cfg.ExtraVars)
	if err != nil {
		return nil, err
	}

	ident := cfg.Ident
	if ident == "" {
		ident = r.newIdent()
	}
	artifactDir, err := dd.createArtifactDir(ident)
	if err != nil {
		return nil, err
	}

	env := inputs.environ()
	playbook := cfg.Playbook
	if playbook == "" {
		playbook, err = writeRolePlaybook(artifactDir, cfg.Role)
		if err != nil {
			return nil, err
		}
		env = append(env, rolesPathEnv+"="+dd.path(defaults.RolesDir))
	}

	extraVarsFile, err := writeExtraVars(artifactDir, extraVars)
	if err != nil {
		return nil, err
	}

	args := buildArgs(argSet{
		inventory:     dd.inventory(),
		extraVarsFile: extraVarsFile,
		tags:          cfg.Tags,
		limit:         cfg.Limit,
		cmdline:       inputs.cmdline,
		playbook:      playbook,
	})

	runCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res := &Result{
		Ident:       ident,
		Command:     append([]string{r.executable}, args...),
		ArtifactDir: artifactDir,
		Started:     time.Now().UTC(),
	}
	if cfg.Playbook != "" {
		res.Playbook = cfg.Playbook
	} else {
		res.Role = cfg.Role
	}

	slog.Info("dispatching run",
		"ident", ident,
		"playbook", res.Playbook,
		"role", res.Role,
		"command", shellescape.QuoteCommand(res.Command),
		"dir", dd.workDir())

	cr, err := r.RunCommand(runCtx, Command{
		Args: args,
		Dir:  dd.workDir(),
		Env:  env,
	})
	res.Duration = time.Since(res.Started)

	switch {
	case err == nil:
		res.RC = cr.RC
		res.Status = StatusFailed
		if cr.RC == 0 {
			res.Status = StatusSuccessful
		}
	case errors.CodeOf(err) == errors.ErrCodeTimeout:
		res.RC = RCInterrupted
		res.Status = StatusTimeout
	case errors.CodeOf(err) == errors.ErrCodeCanceled:
		res.RC = RCInterrupted
		res.Status = StatusCanceled
	default:
		runTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if werr := dd.writeArtifacts(artifactDir, res); werr != nil {
		slog.Warn("failed to write run artifacts", "ident", ident, "error", werr)
	}

	runTotal.WithLabelValues(string(res.Status)).Inc()
	runDuration.Observe(res.Duration.Seconds())

	slog.Info("run completed",
		"ident", ident,
		"status", res.Status,
		"rc", res.RC,
		"duration", res.Duration)

	return res, nil
}

// IsUsageError reports whether err was caused by an invalid request rather
// than by the engine.
func IsUsageError(err error) bool {
	var se *errors.StructuredError
	if !stderrors.As(err, &se) {
		return false
	}
	return se.Code == errors.ErrCodeInvalidRequest || se.Code == errors.ErrCodeConflict
}

type argSet struct {
	inventory     string
	extraVarsFile string
	tags          []string
	limit         string
	cmdline       []string
	playbook      string
}

// buildArgs assembles the ansible-playbook arguments. The playbook is last.
func buildArgs(s argSet) []string {
	var args []string
	if s.inventory != "" {
		args = append(args, "-i", s.inventory)
	}
	if s.extraVarsFile != "" {
		args = append(args, "-e", "@"+s.extraVarsFile)
	}
	if tags := joinTags(s.tags); tags != "" {
		args = append(args, "--tags", tags)
	}
	if s.limit != "" {
		args = append(args, "--limit", s.limit)
	}
	args = append(args, s.cmdline...)
	return append(args, s.playbook)
}

// joinTags joins non-empty, trimmed tags with commas.
func joinTags(tags []string) string {
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ",")
}
