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
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// ReadFiles reads a given set of source files.  Every file is attempted, and
// any failures are reported together.
func ReadFiles(filenames ...string) ([]File, error) {
	var (
		files = make([]File, 0, len(filenames))
		errs  error
	)
	//
	for _, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "reading source file"))
			continue
		}
		//
		files = append(files, *NewSourceFile(n, bytes))
	}
	//
	if errs != nil {
		return nil, errs
	}
	//
	return files, nil
}

// Line is a physical line of a source file, excluding its newline.
type Line struct {
	text []rune
	// Offset of the first character of this line within its file.
	start int
	// Line number (counting from 1).
	number int
}

func (p *Line) String() string {
	return string(p.text)
}

// Number gets the line number of this line, where the first line of a file
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the offset of this line within its file.
func (p *Line) Start() int {
	return p.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return len(p.text)
}

// File is a Verilog-A source file.  Contents are held as runes, so that spans
// index characters rather than bytes.
type File struct {
	filename string
	contents []rune
	// Offset at which each line starts, computed on first use.
	lines []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes)), nil}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// Line returns the line which encloses a given offset.  An offset beyond the
// end of the file gives the last line.
func (s *File) Line(offset int) Line {
	if s.lines == nil {
		s.lines = []int{0}
		//
		for i, c := range s.contents {
			if c == '\n' {
				s.lines = append(s.lines, i+1)
			}
		}
	}
	// Find the last line starting at or before the offset.
	i, found := slices.BinarySearch(s.lines, offset)
	if !found {
		i--
	}
	//
	start, end := s.lines[i], len(s.contents)
	if i+1 < len(s.lines) {
		end = s.lines[i+1] - 1
	}
	//
	return Line{s.contents[start:end], start, i + 1}
}

// SyntaxError is an error reported against a span of a source file.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the source file this error is reported against.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	line := p.srcfile.Line(p.span.start)
	//
	return fmt.Sprintf("%s:%d: %s", p.srcfile.Filename(), line.Number(), p.Message())
}

// Highlight returns the line on which this error starts, along with the offset
// and length of the offending text within that line.  The length is at least
// one, and is clipped to the end of the line for a span covering several lines.
func (p *SyntaxError) Highlight() (Line, int, int) {
	var (
		line   = p.srcfile.Line(p.span.start)
		offset = p.span.start - line.start
	)
	//
	return line, offset, max(1, min(line.Length()-offset, p.span.Length()))
}
