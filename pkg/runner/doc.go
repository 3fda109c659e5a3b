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

// Package runner executes Ansible playbooks and roles by delegating to the
// ansible-playbook binary.
//
// # Overview
//
// Runner exposes two entry points:
//
//   - Run executes a playbook or a role against an ansible-runner style
//     private data directory and reports a Status and return code.
//   - RunCommand executes an arbitrary engine command with the process's
//     standard streams bound, returning captured stdout, stderr and the
//     return code.
//
// The engine does all of the real work (inventory, connections, modules,
// privilege escalation). This package only assembles its command line and
// environment and interprets its exit.
//
// # Private Data Directory
//
// Run reads the same layout ansible-runner does:
//
//	env/extravars   YAML map, overridden by RunConfig.ExtraVars
//	env/envvars     YAML map exported to the engine's environment
//	env/cmdline     extra arguments, split with POSIX shell rules
//	inventory       passed with -i when present
//	project/        working directory when present
//	roles/          exported as ANSIBLE_ROLES_PATH for role runs
//
// Each run writes artifacts/<ident>/ with rc, status and command files.
// Role runs also get a synthesized role_playbook.yml there.
//
// # Usage
//
//	r := runner.New()
//	res, err := r.Run(ctx, runner.RunConfig{
//	    PrivateDataDir: "/srv/automation",
//	    Playbook:       "site.yml",
//	    Tags:           []string{"setup"},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Status, res.RC)
//
// # Errors
//
// A non-zero engine exit is reported through Result.RC and Status, never as
// an error. Errors are returned when the request is invalid, the private data
// directory cannot be read, or the engine cannot be started.
package runner
