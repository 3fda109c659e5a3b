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
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arctl/pkg/runner"
	"github.com/NVIDIA/arctl/pkg/serializer"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var outputFlag = &cli.StringFlag{
	Name:  "output",
	Usage: "Write the result to this file instead of only printing a summary",
}

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Value: string(serializer.FormatYAML),
	Usage: fmt.Sprintf("Format of --output (supported values: %s)",
		strings.Join(serializer.SupportedFormats(), ", ")),
}

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render("ERROR:"), msg)
}

func printRunResult(w io.Writer, res *runner.Result) {
	status := okStyle.Render(string(res.Status))
	if !res.Succeeded() {
		status = failStyle.Render(string(res.Status))
	}
	fmt.Fprintf(w, "%s %s, %s %d\n",
		labelStyle.Render("Status:"), status,
		labelStyle.Render("Return code:"), res.RC)
}

func printCommandResult(w io.Writer, res *runner.CommandResult) {
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Return code:"), res.RC)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Out:"), res.Stdout)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Error:"), res.Stderr)
}

// writeOutput serializes v to path, or to stdout when path is "-".
// It is a no-op when path is empty.
func writeOutput(ctx context.Context, path string, format serializer.Format, v any) error {
	if path == "" {
		return nil
	}
	if path == "-" {
		path = ""
	}
	w, err := serializer.NewFileWriter(format, path)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Serialize(ctx, v)
}

// onUsageError reports flag parsing failures with the usage exit status.
func onUsageError(_ context.Context, cmd *cli.Command, err error, _ bool) error {
	return usageError(cmd.Root().ErrWriter, 2, err.Error())
}
