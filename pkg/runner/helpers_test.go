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
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// fakeEngine is a POSIX shell script standing in for ansible-playbook.
// It reports its working directory, arguments and selected environment
// variables, then exits with $FAKE_RC.
const fakeEngine = `#!/bin/sh
echo "cwd=$(pwd)"
for a in "$@"; do echo "arg=$a"; done
echo "roles_path=${ANSIBLE_ROLES_PATH}"
echo "custom=${CUSTOM_VAR}"
echo "engine stderr" >&2
if [ -n "${FAKE_SLEEP}" ]; then exec sleep "${FAKE_SLEEP}"; fi
exit ${FAKE_RC:-0}
`

type testEnv struct {
	runner *Runner
	dir    string
	engine string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine requires a POSIX shell")
	}

	bin := t.TempDir()
	engine := filepath.Join(bin, "ansible-playbook")
	if err := os.WriteFile(engine, []byte(fakeEngine), 0o755); err != nil {
		t.Fatalf("failed to write fake engine: %v", err)
	}

	env := &testEnv{
		dir:    t.TempDir(),
		engine: engine,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.runner = New(
		WithExecutable(engine),
		WithStreams(strings.NewReader(""), env.stdout, env.stderr),
		WithWaitDelay(time.Second),
	)
	return env
}

func (e *testEnv) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(e.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func (e *testEnv) mkdir(t *testing.T, rel string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(e.dir, rel), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", rel, err)
	}
}

// engineArgs returns the arguments the fake engine reported.
func engineArgs(out string) []string {
	var args []string
	for _, line := range strings.Split(out, "\n") {
		if a, ok := strings.CutPrefix(line, "arg="); ok {
			args = append(args, a)
		}
	}
	return args
}

func engineValue(out, key string) string {
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, key+"="); ok {
			return v
		}
	}
	return ""
}
