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
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/shell"

	"github.com/NVIDIA/arctl/pkg/defaults"
	"github.com/NVIDIA/arctl/pkg/errors"
)

const rolesPathEnv = "ANSIBLE_ROLES_PATH"

// dataDir is an ansible-runner private data directory.
type dataDir struct {
	root string
}

// dataDirInputs are the optional env/ files of a private data directory.
type dataDirInputs struct {
	extraVars map[string]any
	envVars   map[string]string
	cmdline   []string
}

func openDataDir(path string) (*dataDir, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid private data directory", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("private data directory %q does not exist", abs),
				map[string]any{"path": abs})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to stat private data directory", err)
	}
	if !info.IsDir() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("private data directory %q is not a directory", abs),
			map[string]any{"path": abs})
	}
	return &dataDir{root: abs}, nil
}

func (d *dataDir) path(elem ...string) string {
	return filepath.Join(append([]string{d.root}, elem...)...)
}

func (d *dataDir) exists(elem ...string) bool {
	_, err := os.Stat(d.path(elem...))
	return err == nil
}

// workDir is project/ when present, the data directory otherwise.
func (d *dataDir) workDir() string {
	if d.exists(defaults.ProjectDir) {
		return d.path(defaults.ProjectDir)
	}
	return d.root
}

// inventory returns the inventory path when one exists.
func (d *dataDir) inventory() string {
	if d.exists(defaults.InventoryDir) {
		return d.path(defaults.InventoryDir)
	}
	return ""
}

// loadInputs reads env/extravars, env/envvars and env/cmdline concurrently.
// Missing files are not an error.
func (d *dataDir) loadInputs(ctx context.Context) (*dataDirInputs, error) {
	in := &dataDirInputs{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		vars, err := readYAMLMap(d.path(defaults.EnvDir, defaults.ExtraVarsFile))
		in.extraVars = vars
		return err
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		vars, err := readYAMLMap(d.path(defaults.EnvDir, defaults.EnvVarsFile))
		if err != nil {
			return err
		}
		in.envVars = stringifyValues(vars)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		args, err := readCmdline(d.path(defaults.EnvDir, defaults.CmdlineFile))
		in.cmdline = args
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// environ returns env/envvars as sorted KEY=VALUE pairs.
func (in *dataDirInputs) environ() []string {
	keys := make([]string, 0, len(in.envVars))
	for k := range in.envVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+in.envVars[k])
	}
	return env
}

func readYAMLMap(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read %s", path), err)
	}

	var vars map[string]any
	if err := yaml.Unmarshal(content, &vars); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid YAML map", err,
			map[string]any{"path": path})
	}
	return vars, nil
}

func readCmdline(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read %s", path), err)
	}

	args, err := shell.Fields(strings.TrimSpace(string(content)), os.Getenv)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid cmdline", err,
			map[string]any{"path": path})
	}
	return args, nil
}

func stringifyValues(vars map[string]any) map[string]string {
	if len(vars) == 0 {
		return nil
	}
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// mergeExtraVars overlays caller variables on top of env/extravars.
func mergeExtraVars(fileVars, callerVars map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(fileVars)+len(callerVars))
	for _, src := range []map[string]any{fileVars, callerVars} {
		if len(src) == 0 {
			continue
		}
		if err := mergo.Merge(&merged, src, mergo.WithOverride); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to merge extra variables", err)
		}
	}
	return merged, nil
}

func (d *dataDir) createArtifactDir(ident string) (string, error) {
	if ident == "" || strings.ContainsAny(ident, `/\`) || ident == "." || ident == ".." {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid run ident",
			map[string]any{"ident": ident})
	}
	dir := d.path(defaults.ArtifactsDir, ident)
	if err := os.MkdirAll(dir, defaults.ArtifactDirMode); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to create artifact directory", err)
	}
	return dir, nil
}

// writeExtraVars writes vars for -e @file and returns the path, or an empty
// path when there is nothing to pass.
func writeExtraVars(artifactDir string, vars map[string]any) (string, error) {
	if len(vars) == 0 {
		return "", nil
	}
	content, err := yaml.Marshal(vars)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to encode extra variables", err)
	}
	path := filepath.Join(artifactDir, defaults.ArtifactExtraVars)
	if err := os.WriteFile(path, content, defaults.ArtifactFileMode); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to write extra variables", err)
	}
	return path, nil
}

type commandArtifact struct {
	Command []string `json:"command"`
	Cwd     string   `json:"cwd"`
}

// writeArtifacts records rc, status and command like ansible-runner does.
func (d *dataDir) writeArtifacts(artifactDir string, res *Result) error {
	command, err := json.MarshalIndent(commandArtifact{Command: res.Command, Cwd: d.workDir()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode command artifact: %w", err)
	}

	files := map[string][]byte{
		defaults.ArtifactRC:      []byte(strconv.Itoa(res.RC)),
		defaults.ArtifactStatus:  []byte(res.Status),
		defaults.ArtifactCommand: command,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(artifactDir, name), content, defaults.ArtifactFileMode); err != nil {
			return fmt.Errorf("failed to write %s artifact: %w", name, err)
		}
	}
	return nil
}
