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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arctl/pkg/bootstrap"
	"github.com/NVIDIA/arctl/pkg/runner"
)

func initCmd(engine EngineFactory) *cli.Command {
	nodeTypes := make([]string, 0, len(bootstrap.NodeTypes()))
	for _, n := range bootstrap.NodeTypes() {
		nodeTypes = append(nodeTypes, n.String())
	}

	return &cli.Command{
		Name:      "init",
		Usage:     "Bootstrap a control or managed node",
		ArgsUsage: fmt.Sprintf("{%s}", strings.Join(nodeTypes, "|")),
		Description: `Bootstrap a node with ansible-playbook:

  control  project/ansible_control.yml against the localhost inventory
  managed  project/ansible_managed.yml against inventory/hosts

The engine runs attached to the terminal so it can prompt for passwords.`,
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "ask-pass",
				Aliases: []string{"k"},
				Usage:   "Ask for the connection password",
			},
			&cli.BoolFlag{
				Name:    "ask-become-pass",
				Aliases: []string{"K"},
				Usage:   "Ask for the privilege escalation password",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer

			if cmd.NArg() != 1 {
				return usageError(out, 2, fmt.Sprintf("exactly one node type is required (%s)",
					strings.Join(nodeTypes, ", ")))
			}
			node, err := bootstrap.ParseNodeType(cmd.Args().First())
			if err != nil {
				return usageError(out, 2, err.Error())
			}

			args := bootstrap.Args(node, cmd.Bool("ask-pass"), cmd.Bool("ask-become-pass"))
			slog.Info("initializing node",
				"type", node.String(),
				"playbook", node.Playbook(),
				"inventory", node.Inventory())

			res, err := engine(cmd).RunCommand(ctx, runner.Command{
				Executable: cmd.String("executable"),
				Args:       args,
			})
			if res != nil {
				printCommandResult(out, res)
			}
			return err
		},
	}
}
