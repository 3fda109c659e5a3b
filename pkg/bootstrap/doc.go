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

// Package bootstrap maps an Ansible node type to the fixed playbook and
// inventory used to initialize it.
//
// A control node is prepared by running the control playbook against the
// implicit localhost inventory. A managed node is prepared from the control
// node by running the managed playbook against inventory/hosts.
//
//	node, err := bootstrap.ParseNodeType("managed")
//	args := bootstrap.Args(node, askPass, askBecomePass)
//	// [project/ansible_managed.yml -i inventory/hosts -k]
package bootstrap
