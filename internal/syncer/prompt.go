package syncer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user to confirm one sync operation.
type Prompter interface {
	// Confirm prints the message and reports whether the user agreed.
	Confirm(message string) (bool, error)
}

// TerminalPrompter reads y/yes answers from an interactive terminal.
// When the input is not a terminal every confirmation is declined, so
// unattended runs never block; use force mode to sync non-interactively.
type TerminalPrompter struct {
	in  *os.File
	out io.Writer
	r   *bufio.Reader
}

// NewTerminalPrompter returns a prompter reading from in, normally
// os.Stdin, and writing prompt messages to out.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out, r: bufio.NewReader(in)}
}

func (p *TerminalPrompter) Confirm(message string) (bool, error) {
	if !term.IsTerminal(int(p.in.Fd())) {
		return false, nil
	}
	if _, err := fmt.Fprint(p.out, message); err != nil {
		return false, err
	}
	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
