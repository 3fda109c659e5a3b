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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/arctl/pkg/defaults"
	"github.com/NVIDIA/arctl/pkg/runner"
	"github.com/NVIDIA/arctl/pkg/serializer"
)

const (
	msgNoSelector   = "Either playbook or role must be provided."
	msgBothSelector = "Only one of playbook or role can be specified."
)

func runCmd(engine EngineFactory) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a playbook or a role",
		ArgsUsage: "[PRIVATE_DATA_DIR]",
		Description: `Run a playbook or a role against an ansible-runner style private data
directory (default: the current directory):

  env/extravars  YAML map of extra variables
  env/envvars    YAML map of environment variables for the engine
  env/cmdline    Additional ansible-playbook arguments
  inventory/     Inventory passed with -i
  project/       Playbooks, used as the working directory
  roles/         Roles, exported as ANSIBLE_ROLES_PATH
  artifacts/     Per-run rc, status and command files

Exactly one of --playbook and --role must be given.`,
		OnUsageError: onUsageError,
		// extra vars may contain commas; the setting is read from the
		// command that owns the slice flag
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "playbook",
				Aliases: []string{"p"},
				Usage:   "Playbook to run, relative to project/",
			},
			&cli.StringFlag{
				Name:    "role",
				Aliases: []string{"r"},
				Usage:   "Role to run through a generated playbook",
			},
			&cli.StringFlag{
				Name:    "tags",
				Aliases: []string{"t"},
				Usage:   "Comma-separated list of tags to run",
			},
			&cli.StringSliceFlag{
				Name:    "extra-vars",
				Aliases: []string{"e"},
				Usage:   "Extra variable as key=value, values are parsed as YAML scalars (can be repeated)",
			},
			&cli.StringFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Limit the run to hosts matching this pattern",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Stop the engine after this duration (0 disables the timeout)",
				Value:   defaults.RunTimeout,
				Sources: cli.EnvVars("ARCTL_RUN_TIMEOUT"),
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with the engine's return code when the run does not succeed",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer

			playbook, role := cmd.String("playbook"), cmd.String("role")
			if playbook == "" && role == "" {
				return usageError(out, 1, msgNoSelector)
			}
			if playbook != "" && role != "" {
				return usageError(out, 2, msgBothSelector)
			}

			dir, err := privateDataDir(cmd.Args().First())
			if err != nil {
				return usageError(out, 2, err.Error())
			}

			extraVars, err := parseExtraVars(cmd.StringSlice("extra-vars"))
			if err != nil {
				return usageError(out, 2, err.Error())
			}

			format, err := serializer.ParseFormat(cmd.String("format"))
			if err != nil {
				return usageError(out, 2, err.Error())
			}

			res, err := engine(cmd).Run(ctx, runner.RunConfig{
				PrivateDataDir: dir,
				Playbook:       playbook,
				Role:           role,
				Tags:           splitTags(cmd.String("tags")),
				ExtraVars:      extraVars,
				Limit:          cmd.String("limit"),
				Timeout:        cmd.Duration("timeout"),
			})
			if runner.IsUsageError(err) {
				return usageError(out, 2, err.Error())
			}
			if err != nil {
				return err
			}

			printRunResult(out, res)

			if err := writeOutput(ctx, cmd.String("output"), format, res); err != nil {
				return err
			}

			if cmd.Bool("fail-on-error") && !res.Succeeded() {
				rc := res.RC
				if rc == 0 {
					rc = 1
				}
				return cli.Exit("", rc)
			}
			return nil
		},
	}
}

// privateDataDir resolves the positional directory argument, defaulting to
// the current working directory, and checks that it is a directory.
func privateDataDir(arg string) (string, error) {
	if arg == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		return wd, nil
	}
	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("private data directory %q does not exist", arg)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("private data directory %q is not a directory", arg)
	}
	return arg, nil
}

// splitTags splits a comma-separated tag list, dropping empty entries.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseExtraVars turns key=value pairs into a variable map. Values are
// decoded as YAML scalars so that numbers and booleans keep their type.
func parseExtraVars(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid extra variable %q, expected key=value", pair)
		}
		vars[key] = scalar(raw)
	}
	return vars, nil
}

func scalar(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case nil:
		if raw == "" {
			return ""
		}
		return nil
	case map[string]any, []any:
		return raw
	default:
		return v
	}
}
