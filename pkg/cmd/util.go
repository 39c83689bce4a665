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
	"os"
	"strings"

	"github.com/consensys/go-vams/pkg/util"
	"github.com/consensys/go-vams/pkg/util/source"
	"github.com/consensys/go-vams/pkg/util/termio"
	"github.com/consensys/go-vams/pkg/vams/compiler"
	"github.com/consensys/go-vams/pkg/vams/parser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Read and elaborate the given source files using the configuration determined
// by the command-line flags.  Any errors are reported and the process exits.
func compileFiles(cmd *cobra.Command, filenames []string) []*compiler.Module {
	config, err := getConfig(cmd)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	modules, errs := elaborate(config, filenames...)
	//
	if len(errs) != 0 {
		colour := !GetFlag(cmd, "no-colour") && termio.IsTerminal(os.Stdout)
		//
		for _, err := range errs {
			printSyntaxError(os.Stdout, &err, colour)
		}
		//
		os.Exit(4)
	}
	//
	return modules
}

// Read and elaborate the given source files, returning the modules of every
// file in order.  Modules are only returned when no errors arise.
func elaborate(config compiler.Config, filenames ...string) ([]*compiler.Module, []source.SyntaxError) {
	var (
		stats   = util.NewPerfStats()
		modules []*compiler.Module
		errors  []source.SyntaxError
	)
	//
	srcfiles, err := source.ReadFiles(filenames...)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	for i := range srcfiles {
		ms, errs := parser.Parse(&srcfiles[i], config)
		modules = append(modules, ms...)
		errors = append(errors, errs...)
	}
	//
	stats.Log("Elaborating source files")
	log.Debugf("elaborated %d module(s) with %d error(s)", len(modules), len(errors))
	//
	if len(errors) != 0 {
		return nil, errors
	}
	//
	return modules, nil
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, err *source.SyntaxError, colour bool) {
	line, lineOffset, length := err.Highlight()
	// Print error + line number
	fmt.Fprintf(out, "%s:%d:%d-%d %s\n", err.SourceFile().Filename(), line.Number(), 1+lineOffset,
		1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Fprintln(out)
	// Print line
	fmt.Fprintln(out, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(out, strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Fprintln(out, termio.Highlight(strings.Repeat("^", length), termio.TERM_RED, colour))
}
