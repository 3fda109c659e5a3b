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
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arctl/pkg/runner"
)

// fakeEngine records the calls made by the commands.
type fakeEngine struct {
	runs     []runner.RunConfig
	commands []runner.Command

	result    *runner.Result
	cmdResult *runner.CommandResult
	err       error
}

func (f *fakeEngine) Run(_ context.Context, cfg runner.RunConfig) (*runner.Result, error) {
	f.runs = append(f.runs, cfg)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &runner.Result{Status: runner.StatusSuccessful, RC: 0}, nil
}

func (f *fakeEngine) RunCommand(_ context.Context, c runner.Command) (*runner.CommandResult, error) {
	f.commands = append(f.commands, c)
	if f.err != nil {
		return nil, f.err
	}
	if f.cmdResult != nil {
		return f.cmdResult, nil
	}
	return &runner.CommandResult{}, nil
}

// runCLI executes the root command with args and returns what it printed
// and the exit status Execute would use.
func runCLI(t *testing.T, engine Engine, args ...string) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	cmd := newRootCmd(func(*cli.Command) Engine { return engine })
	cmd.Writer = &buf
	cmd.ErrWriter = &buf

	err := cmd.Run(t.Context(), append([]string{name}, args...))
	return buf.String(), exitCode(err)
}
