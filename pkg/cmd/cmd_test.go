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
	"bytes"
	"testing"

	"github.com/consensys/go-vams/pkg/util/source"
	"github.com/consensys/go-vams/pkg/vams/compiler"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve_00(t *testing.T) {
	checkGolden(t, "divider_resolve", func(buf *bytes.Buffer) {
		writeResolved(buf, elaborateFiles(t, "testdata/divider.va"))
	})
}

func Test_Deps_00(t *testing.T) {
	checkGolden(t, "divider_deps", func(buf *bytes.Buffer) {
		writeDeps(buf, elaborateFiles(t, "testdata/divider.va"), false)
	})
}

func Test_Config_00(t *testing.T) {
	config, err := readConfig("testdata/config.yaml")
	//
	require.NoError(t, err)
	assert.False(t, config.Simplify)
	assert.Equal(t, uint(7), config.MaxIterations)
	assert.Equal(t, map[string]string{"r": "2k"}, config.Parameters)
	// Access functions given in the file extend the defaults.
	assert.Equal(t, map[string]string{"V": "potential", "I": "flow", "Temp": "potential"}, config.AccessFunctions)
}

func Test_Config_01(t *testing.T) {
	_, err := readConfig("testdata/missing.yaml")
	assert.Error(t, err)
}

func Test_Root_00(t *testing.T) {
	var buf bytes.Buffer
	//
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--version"})
	//
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "go-vams")
}

func Test_SyntaxError_00(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.va", []byte("module m;\n  analog V(a) <+ 1;\nendmodule"))
		err     = srcfile.SyntaxError(source.NewSpan(19, 20), "unknown branch")
	)
	//
	printSyntaxError(&buf, err, false)
	//
	assert.Equal(t, "test.va:2:10-11 unknown branch\n\n  analog V(a) <+ 1;\n         ^\n", buf.String())
}

func elaborateFiles(t *testing.T, filenames ...string) []*compiler.Module {
	modules, errs := elaborate(compiler.DefaultConfig(), filenames...)
	//
	for _, err := range errs {
		t.Errorf("unexpected error: %s", err.Message())
	}
	//
	return modules
}

func checkGolden(t *testing.T, name string, write func(*bytes.Buffer)) {
	var buf bytes.Buffer
	//
	write(&buf)
	//
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, name, buf.Bytes())
}
