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
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/arctl/pkg/defaults"
	"github.com/NVIDIA/arctl/pkg/errors"
)

type rolePlay struct {
	Hosts       string    `yaml:"hosts"`
	GatherFacts bool      `yaml:"gather_facts"`
	Roles       []roleRef `yaml:"roles"`
}

type roleRef struct {
	Role string `yaml:"role"`
}

// writeRolePlaybook writes a single-play playbook applying role to all hosts
// and returns its path.
func writeRolePlaybook(artifactDir, role string) (string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "role name must not be empty")
	}

	content, err := yaml.Marshal([]rolePlay{{
		Hosts:       defaults.RoleHosts,
		GatherFacts: true,
		Roles:       []roleRef{{Role: role}},
	}})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to encode role playbook", err)
	}

	path := filepath.Join(artifactDir, defaults.ArtifactPlaybook)
	if err := os.WriteFile(path, content, defaults.ArtifactFileMode); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to write role playbook", err)
	}
	return path, nil
}
