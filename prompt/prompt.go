// Package prompt handles the operator console: questions, answers and
// colored status lines.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"imagemerger/utils"
)

var (
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
)

// Prompter asks questions on out and reads answers line by line from in.
// Once in is exhausted every further question gets an empty answer, which
// selects the default.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// New creates a prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out returns the writer the prompter prints to
func (p *Prompter) Out() io.Writer { return p.out }

// Ask prints question and returns the trimmed answer
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if p.eof {
		fmt.Fprintln(p.out)
		return "", nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading answer")
		}
		p.eof = true
		fmt.Fprintln(p.out)
	}
	return utils.TrimAnswer(line), nil
}

// AskYesNo asks a y/n question. A blank answer returns def, "y" or "yes"
// (any case) returns true and anything else returns false.
func (p *Prompter) AskYesNo(question string, def bool) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// WaitForExit blocks until the operator presses Enter or input ends
func (p *Prompter) WaitForExit() {
	_, _ = p.Ask("Press Enter to exit...")
}

// Println prints an uncolored line
func (p *Prompter) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Printf prints uncolored formatted text
func (p *Prompter) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Info prints a highlighted informational line
func (p *Prompter) Info(format string, a ...interface{}) {
	infoColor.Fprintln(p.out, fmt.Sprintf(format, a...))
}

// Warn prints a warning line
func (p *Prompter) Warn(format string, a ...interface{}) {
	warnColor.Fprintln(p.out, "Warning: "+fmt.Sprintf(format, a...))
}

// Error prints an error line
func (p *Prompter) Error(format string, a ...interface{}) {
	errorColor.Fprintln(p.out, "Error: "+fmt.Sprintf(format, a...))
}

// Success prints a success line
func (p *Prompter) Success(format string, a ...interface{}) {
	successColor.Fprintln(p.out, fmt.Sprintf(format, a...))
}
