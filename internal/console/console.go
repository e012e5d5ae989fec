// Package console reads prompted lines of user input.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

// ErrInvalidUTF8 is returned when an input line is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// LinePrompter writes a prompt and reads one line of input per call.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a prompter reading from r and writing prompts to w.
func New(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

// ReadLine prints prompt and returns the next input line with trailing
// whitespace removed. End of input yields whatever was read, possibly "".
// Lines that are not valid UTF-8 are rejected with ErrInvalidUTF8.
func (p *LinePrompter) ReadLine(prompt string) (string, error) {
	if p.out != nil && prompt != "" {
		if _, err := fmt.Fprint(p.out, prompt); err != nil {
			return "", fmt.Errorf("write prompt: %w", err)
		}
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read line: %w", err)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	return strings.TrimRightFunc(line, unicode.IsSpace), nil
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
