package termio

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// TERM_BLUE represents blue
const TERM_BLUE = uint(4)

// AnsiEscape represents an ANSI escape code used for formatting text in a terminal.
type AnsiEscape struct {
	escape string
	count  uint
}

// ResetAnsiEscape constructs a reset term.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// BoldAnsiEscape constructs a bold term.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[1", 1}
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	col += 30
	// Construct string
	var escape string
	if p.count > 0 {
		escape = fmt.Sprintf("%s;%d", p.escape, col)
	} else {
		escape = fmt.Sprintf("%s[%d", p.escape, col)
	}
	// Done
	return AnsiEscape{escape, p.count + 1}
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", p.escape)
}

// Highlight wraps some text in escapes which set its foreground colour (in
// bold), or returns it unchanged when colour is disabled.
func Highlight(text string, col uint, enable bool) string {
	if !enable {
		return text
	}
	//
	escape := BoldAnsiEscape().FgColour(col).Build()
	reset := ResetAnsiEscape().Build()
	//
	return fmt.Sprintf("%s%s%s", escape, text, reset)
}

// IsTerminal determines whether a given file is attached to a terminal, and
// hence whether escapes should be emitted.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
