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
	"strings"

	"github.com/consensys/go-vams/pkg/vams/compiler"
	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/spf13/cobra"
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps [flags] source_file(s)",
	Short: "Print the branches of one or more modules, and what they are needed by.",
	Long: `Elaborate one or more Verilog-AMS source files, and print for each module
the branches which are used along with their usage counts and the
contributions which (transitively) depend upon them.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modules := compileFiles(cmd, args)
		//
		writeDeps(cmd.OutOrStdout(), modules, GetFlag(cmd, "all"))
	},
}

var usageNames = [topology.NUM_USAGES]string{"vprobe", "iprobe", "vsource", "isource", "short"}

// Write the branches of each module, along with their usage and reverse
// dependencies.  Unused branches are only included when requested.
func writeDeps(out io.Writer, modules []*compiler.Module, all bool) {
	for _, m := range modules {
		branches := m.Circuit().UsedBranches()
		//
		if all {
			branches = m.Circuit().Branches()
		}
		//
		fmt.Fprintf(out, "module %s\n", m.Name())
		//
		for _, b := range branches {
			fmt.Fprintf(out, "  branch %s", b.String())
			//
			for i, name := range usageNames {
				if n := b.Count(topology.Usage(i)); n != 0 {
					fmt.Fprintf(out, " %s=%d", name, n)
				}
			}
			//
			fmt.Fprintf(out, " needed-by=%s\n", markers(b.RDeps()))
		}
		//
		for _, n := range m.Circuit().Nodes() {
			if target, _ := n.Short(); target != nil {
				fmt.Fprintf(out, "  node %s\n", n.String())
			}
		}
	}
}

func markers(rdeps *topology.RDeps) string {
	var names []string
	//
	for _, m := range rdeps.Items() {
		names = append(names, m.String())
	}
	//
	return fmt.Sprintf("[%s]", strings.Join(names, ", "))
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().Bool("all", false, "include unused branches")
}
