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

package bootstrap

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/arctl/pkg/errors"
)

// NodeType identifies the kind of Ansible node being initialized.
type NodeType string

const (
	// NodeTypeControl is the machine issuing automation.
	NodeTypeControl NodeType = "control"
	// NodeTypeManaged is a machine configured by the control node.
	NodeTypeManaged NodeType = "managed"
)

// Prompt flags understood by ansible-playbook.
const (
	FlagAskPass       = "-k"
	FlagAskBecomePass = "-K"
	flagInventory     = "-i"
)

type nodePlan struct {
	playbook  string
	inventory string
}

var plans = map[NodeType]nodePlan{
	NodeTypeControl: {
		playbook:  "project/ansible_control.yml",
		inventory: "localhost,",
	},
	NodeTypeManaged: {
		playbook:  "project/ansible_managed.yml",
		inventory: "inventory/hosts",
	},
}

// NodeTypes returns the supported node types in display order.
func NodeTypes() []NodeType {
	return []NodeType{NodeTypeControl, NodeTypeManaged}
}

// ParseNodeType converts s into a NodeType. Unknown values are rejected.
func ParseNodeType(s string) (NodeType, error) {
	n := NodeType(strings.TrimSpace(s))
	if _, ok := plans[n]; !ok {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid node type %q (must be one of: %s)", s, joinNodeTypes()),
			map[string]any{"node": s})
	}
	return n, nil
}

// IsValid reports whether n is a known node type.
func (n NodeType) IsValid() bool {
	_, ok := plans[n]
	return ok
}

// String implements fmt.Stringer.
func (n NodeType) String() string {
	return string(n)
}

// Playbook returns the playbook path used to initialize the node.
func (n NodeType) Playbook() string {
	return plans[n].playbook
}

// Inventory returns the inventory source used to initialize the node.
func (n NodeType) Inventory() string {
	return plans[n].inventory
}

// Args assembles the ansible-playbook arguments for initializing node:
// the playbook, the inventory, then -k and -K when the corresponding
// prompts are requested.
func Args(node NodeType, askPass, askBecomePass bool) []string {
	args := []string{node.Playbook(), flagInventory, node.Inventory()}
	if askPass {
		args = append(args, FlagAskPass)
	}
	if askBecomePass {
		args = append(args, FlagAskBecomePass)
	}
	return args
}

func joinNodeTypes() string {
	types := NodeTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
