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

// Package defaults provides centralized configuration constants for arctl.
//
// This package defines the engine executable, the private data directory
// layout, and the timeouts applied around delegated engine processes.
// Centralizing these values keeps the CLI and the runner in agreement.
//
// # Private Data Directory
//
// The layout follows ansible-runner:
//
//	<private_data_dir>/
//	  env/extravars     YAML map of extra variables
//	  env/envvars       YAML map of environment variables
//	  env/cmdline       extra command-line arguments
//	  inventory/        inventory sources
//	  project/          playbooks (working directory)
//	  roles/            roles, exported as ANSIBLE_ROLES_PATH
//	  artifacts/<ident> per-run artifacts (rc, status, command)
//
// # Usage
//
//	cmd.WaitDelay = defaults.CommandWaitDelay
package defaults
