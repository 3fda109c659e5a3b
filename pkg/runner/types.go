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
	"io"
	"time"
)

// Status is the outcome of a run, using ansible-runner's vocabulary.
type Status string

const (
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
	StatusTimeout    Status = "timeout"
	StatusCanceled   Status = "canceled"
)

// RCInterrupted is the return code reported when the engine was stopped
// because of a timeout or cancellation.
const RCInterrupted = 254

// RunConfig describes a single playbook or role run.
// Exactly one of Playbook and Role should be set; when both are, Playbook wins.
type RunConfig struct {
	// PrivateDataDir is the ansible-runner style input/output directory.
	// Empty means the current working directory.
	PrivateDataDir string

	// Playbook is the playbook to execute, relative to project/.
	Playbook string

	// Role is the role to execute through a synthesized playbook.
	Role string

	// Tags restricts execution to tasks with these tags.
	Tags []string

	// ExtraVars are passed to the engine with the highest precedence.
	ExtraVars map[string]any

	// Limit restricts the run to a host pattern.
	Limit string

	// Timeout stops the engine after the given duration. Zero disables it.
	Timeout time.Duration

	// Ident names the artifact directory. Generated when empty.
	Ident string
}

// Result is the outcome of Run.
type Result struct {
	Ident       string        `json:"ident" yaml:"ident"`
	Status      Status        `json:"status" yaml:"status"`
	RC          int           `json:"rc" yaml:"rc"`
	Playbook    string        `json:"playbook,omitempty" yaml:"playbook,omitempty"`
	Role        string        `json:"role,omitempty" yaml:"role,omitempty"`
	Command     []string      `json:"command" yaml:"command"`
	ArtifactDir string        `json:"artifactDir" yaml:"artifactDir"`
	Started     time.Time     `json:"started" yaml:"started"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the engine finished with status successful.
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == StatusSuccessful
}

// Command is a single engine invocation.
type Command struct {
	// Executable defaults to the runner's executable (ansible-playbook).
	Executable string

	// Args defaults to a single site.yml.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is appended to the current process environment.
	Env []string

	// Standard streams. Nil values use the runner's streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandResult holds what the engine wrote and how it exited.
type CommandResult struct {
	Stdout string `json:"stdout" yaml:"stdout"`
	Stderr string `json:"stderr" yaml:"stderr"`
	RC     int    `json:"rc" yaml:"rc"`
}
