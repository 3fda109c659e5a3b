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

package defaults

import "time"

// Engine invocation defaults.
const (
	// Executable is the playbook execution binary of the engine.
	Executable = "ansible-playbook"

	// Playbook is the playbook passed when no arguments are given.
	Playbook = "site.yml"

	// RoleHosts is the host pattern of playbooks synthesized for roles.
	RoleHosts = "all"
)

// Private data directory layout.
const (
	EnvDir        = "env"
	ExtraVarsFile = "extravars"
	EnvVarsFile   = "envvars"
	CmdlineFile   = "cmdline"
	InventoryDir  = "inventory"
	ProjectDir    = "project"
	RolesDir      = "roles"
	ArtifactsDir  = "artifacts"
)

// Artifact file names written for every run.
const (
	ArtifactRC        = "rc"
	ArtifactStatus    = "status"
	ArtifactCommand   = "command"
	ArtifactExtraVars = "extravars.yml"
	ArtifactPlaybook  = "role_playbook.yml"
)

// Process timeouts.
const (
	// CommandWaitDelay bounds how long the runner waits for the engine's
	// output pipes to close after the process exits or is killed.
	CommandWaitDelay = 10 * time.Second

	// RunTimeout is the default run timeout. Zero disables the timeout.
	RunTimeout time.Duration = 0
)

// File permissions for artifacts.
const (
	ArtifactDirMode  = 0o750
	ArtifactFileMode = 0o640
)
