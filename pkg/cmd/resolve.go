// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"

	"github.com/consensys/go-vams/pkg/vams/compiler"
	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] source_file(s)",
	Short: "Print the resolved analog behaviour of one or more modules.",
	Long: `Elaborate one or more Verilog-AMS source files, and print the resolved
analog blocks of each module annotated with their dependency summaries.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modules := compileFiles(cmd, args)
		//
		writeResolved(cmd.OutOrStdout(), modules)
	},
}

// Write the resolved analog blocks of each module.
func writeResolved(out io.Writer, modules []*compiler.Module) {
	for _, m := range modules {
		fmt.Fprintf(out, "module %s\n", m.Name())
		//
		for _, line := range m.Lines() {
			fmt.Fprintln(out, line)
		}
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(resolveCmd)
}
