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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/arctl/pkg/errors"
	"github.com/NVIDIA/arctl/pkg/runner"
)

func TestRunCmd_SelectorValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "neither playbook nor role",
			args:     []string{"run", dir},
			wantCode: 1,
			wantMsg:  msgNoSelector,
		},
		{
			name:     "neither with tags",
			args:     []string{"run", "-t", "a,b", dir},
			wantCode: 1,
			wantMsg:  msgNoSelector,
		},
		{
			name:     "neither with missing directory",
			args:     []string{"run", filepath.Join(dir, "missing")},
			wantCode: 1,
			wantMsg:  msgNoSelector,
		},
		{
			name:     "both playbook and role",
			args:     []string{"run", "-p", "site.yml", "-r", "web", dir},
			wantCode: 2,
			wantMsg:  msgBothSelector,
		},
		{
			name:     "both with long flags",
			args:     []string{"run", "--playbook", "site.yml", "--role", "web", dir},
			wantCode: 2,
			wantMsg:  msgBothSelector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{}
			out, code := runCLI(t, engine, tt.args...)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, out, "ERROR:")
			assert.Contains(t, out, tt.wantMsg)
			assert.Empty(t, engine.runs, "engine must not be called")
		})
	}
}

func TestRunCmd_Dispatch(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want runner.RunConfig
	}{
		{
			name: "playbook",
			args: []string{"run", "-p", "site.yml", dir},
			want: runner.RunConfig{PrivateDataDir: dir, Playbook: "site.yml"},
		},
		{
			name: "playbook with tags",
			args: []string{"run", "--playbook", "site.yml", "--tags", "setup, deploy,,", dir},
			want: runner.RunConfig{PrivateDataDir: dir, Playbook: "site.yml", Tags: []string{"setup", "deploy"}},
		},
		{
			name: "role",
			args: []string{"run", "-r", "webserver", dir},
			want: runner.RunConfig{PrivateDataDir: dir, Role: "webserver"},
		},
		{
			name: "role with tags and limit",
			args: []string{"run", "-r", "webserver", "-t", "install", "-l", "web*", dir},
			want: runner.RunConfig{PrivateDataDir: dir, Role: "webserver", Tags: []string{"install"}, Limit: "web*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{}
			out, code := runCLI(t, engine, tt.args...)

			assert.Equal(t, 0, code)
			require.Len(t, engine.runs, 1)
			assert.Equal(t, tt.want, engine.runs[0])
			assert.Contains(t, out, "Status:")
			assert.Contains(t, out, "successful")
			assert.Contains(t, out, "Return code:")
		})
	}
}

func TestRunCmd_DefaultsToWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)

	engine := &fakeEngine{}
	_, code := runCLI(t, engine, "run", "-p", "site.yml")

	assert.Equal(t, 0, code)
	require.Len(t, engine.runs, 1)
	assert.Equal(t, wd, engine.runs[0].PrivateDataDir)
}

func TestRunCmd_InvalidDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	for _, arg := range []string{filepath.Join(dir, "missing"), file} {
		engine := &fakeEngine{}
		out, code := runCLI(t, engine, "run", "-p", "site.yml", arg)

		assert.Equal(t, 2, code, arg)
		assert.Contains(t, out, "private data directory")
		assert.Empty(t, engine.runs)
	}
}

func TestRunCmd_ExtraVars(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{}

	_, code := runCLI(t, engine, "run", "-p", "site.yml",
		"-e", "replicas=3",
		"-e", "debug=true",
		"--extra-vars", "hosts=web,db",
		"-e", "empty=",
		dir)

	assert.Equal(t, 0, code)
	require.Len(t, engine.runs, 1)
	assert.Equal(t, map[string]any{
		"replicas": 3,
		"debug":    true,
		"hosts":    "web,db",
		"empty":    "",
	}, engine.runs[0].ExtraVars)
}

func TestRunCmd_ExtraVarsKeepCommas(t *testing.T) {
	engine := &fakeEngine{}
	out, code := runCLI(t, engine, "run", "-p", "site.yml", "-e", "hosts=web,db", "-e", "ports=80,443", t.TempDir())

	require.Equal(t, 0, code, out)
	require.Len(t, engine.runs, 1)
	assert.Equal(t, map[string]any{
		"hosts": "web,db",
		"ports": "80,443",
	}, engine.runs[0].ExtraVars)
}

func TestRunCmd_InvalidExtraVar(t *testing.T) {
	engine := &fakeEngine{}
	out, code := runCLI(t, engine, "run", "-p", "site.yml", "-e", "novalue", t.TempDir())

	assert.Equal(t, 2, code)
	assert.Contains(t, out, "expected key=value")
	assert.Empty(t, engine.runs)
}

func TestRunCmd_InvalidFormat(t *testing.T) {
	engine := &fakeEngine{}
	out, code := runCLI(t, engine, "run", "-p", "site.yml", "--format", "xml", t.TempDir())

	assert.Equal(t, 2, code)
	assert.Contains(t, out, "unknown output format")
	assert.Empty(t, engine.runs)
}

func TestRunCmd_Output(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "result.json")
	engine := &fakeEngine{result: &runner.Result{
		Ident:    "abc",
		Status:   runner.StatusFailed,
		RC:       2,
		Playbook: "site.yml",
	}}

	_, code := runCLI(t, engine, "run", "-p", "site.yml", "--output", path, "--format", "json", dir)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "abc", got["ident"])
	assert.Equal(t, "failed", got["status"])
	assert.EqualValues(t, 2, got["rc"])
}

func TestRunCmd_FailOnError(t *testing.T) {
	tests := []struct {
		name     string
		result   *runner.Result
		flag     bool
		wantCode int
	}{
		{
			name:     "failed run exits 0 by default",
			result:   &runner.Result{Status: runner.StatusFailed, RC: 2},
			wantCode: 0,
		},
		{
			name:     "failed run exits with rc",
			result:   &runner.Result{Status: runner.StatusFailed, RC: 4},
			flag:     true,
			wantCode: 4,
		},
		{
			name:     "timeout exits with interrupted rc",
			result:   &runner.Result{Status: runner.StatusTimeout, RC: runner.RCInterrupted},
			flag:     true,
			wantCode: runner.RCInterrupted,
		},
		{
			name:     "successful run exits 0",
			result:   &runner.Result{Status: runner.StatusSuccessful},
			flag:     true,
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"run", "-p", "site.yml"}
			if tt.flag {
				args = append(args, "--fail-on-error")
			}
			args = append(args, t.TempDir())

			out, code := runCLI(t, &fakeEngine{result: tt.result}, args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, out, string(tt.result.Status))
		})
	}
}

func TestRunCmd_EngineError(t *testing.T) {
	engine := &fakeEngine{err: errors.New(errors.ErrCodeNotFound, "engine not found")}
	_, code := runCLI(t, engine, "run", "-p", "site.yml", t.TempDir())

	assert.Equal(t, 127, code)
	assert.Len(t, engine.runs, 1)
}

func TestRunCmd_EngineUsageError(t *testing.T) {
	engine := &fakeEngine{err: errors.New(errors.ErrCodeInvalidRequest, "invalid ident")}
	out, code := runCLI(t, engine, "run", "-p", "site.yml", t.TempDir())

	assert.Equal(t, 2, code)
	assert.Contains(t, out, "invalid ident")
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "a", want: []string{"a"}},
		{in: "a,b", want: []string{"a", "b"}},
		{in: " a , ,b,", want: []string{"a", "b"}},
		{in: ",,", want: nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitTags(tt.in), tt.in)
	}
}

func TestParseExtraVars(t *testing.T) {
	got, err := parseExtraVars(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseExtraVars([]string{
		"port=8080",
		"ratio=0.5",
		"enabled=false",
		"name=web",
		"list=[1, 2]",
		"url=http://example.com/?a=b",
		"nothing=null",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"port":    8080,
		"ratio":   0.5,
		"enabled": false,
		"name":    "web",
		"list":    "[1, 2]",
		"url":     "http://example.com/?a=b",
		"nothing": nil,
	}, got)

	for _, bad := range []string{"noequals", "=value", " =value"} {
		_, err := parseExtraVars([]string{bad})
		assert.Error(t, err, bad)
	}
}
