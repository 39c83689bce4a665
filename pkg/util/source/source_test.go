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
package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Source_00(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.va", []byte("module m;\n  analog V(a) <+ 1;\nendmodule"))
		line    = srcfile.Line(19)
	)
	//
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, 10, line.Start())
	assert.Equal(t, "  analog V(a) <+ 1;", line.String())
}

func Test_Source_01(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.va", []byte("a\nb"))
		// Beyond the end of the file
		line = srcfile.Line(5)
	)
	//
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "b", line.String())
}

func Test_Map_00(t *testing.T) {
	var (
		srcfile = NewSourceFile("test.va", []byte("module m;\nmodule n;"))
		srcmap  = NewSourceMap[string](srcfile)
	)
	//
	srcmap.Put("n", NewSpan(17, 18))
	assert.True(t, srcmap.Has("n"))
	assert.False(t, srcmap.Has("m"))
	assert.Panics(t, func() { srcmap.Put("n", NewSpan(0, 1)) })
	//
	err := srcmap.SyntaxError("n", "oops")
	assert.Equal(t, NewSpan(17, 18), err.Span())
	assert.Equal(t, "test.va:2: oops", err.Error())
	// Unmapped items are reported at the start of the file.
	err = srcmap.SyntaxError("m", "oops")
	assert.Equal(t, "test.va:1: oops", err.Error())
}

func Test_Source_02(t *testing.T) {
	var srcfile = NewSourceFile("test.va", []byte("a <+ b;\nc(d\n,e);"))
	// Span within a single line
	line, offset, length := srcfile.SyntaxError(NewSpan(2, 4), "oops").Highlight()
	assert.Equal(t, 1, line.Number())
	assert.Equal(t, 2, offset)
	assert.Equal(t, 2, length)
	// Span crossing a line is clipped
	line, offset, length = srcfile.SyntaxError(NewSpan(9, 15), "oops").Highlight()
	assert.Equal(t, "c(d", line.String())
	assert.Equal(t, 1, offset)
	assert.Equal(t, 2, length)
	// Empty span still highlights something
	_, _, length = srcfile.SyntaxError(NewSpan(8, 8), "oops").Highlight()
	assert.Equal(t, 1, length)
}

func Test_ReadFiles_00(t *testing.T) {
	_, err := ReadFiles("missing.va", "absent.va")
	//
	assert.ErrorContains(t, err, "missing.va")
	assert.ErrorContains(t, err, "absent.va")
}
