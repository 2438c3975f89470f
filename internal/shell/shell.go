// Package shell provides synchronous interactive terminal I/O: prompting,
// yes/no confirmation and user-facing output. All input is read line-wise
// and blocks until the user responds.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Shell reads interactive input from in and writes user-facing output to
// out, with diagnostics on err.
type Shell struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
	err io.Writer
}

// New creates a Shell over the given streams. For normal operation these
// are os.Stdin, os.Stdout and os.Stderr; tests substitute buffers.
func New(in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		in:  bufio.NewReader(in),
		raw: in,
		out: out,
		err: errOut,
	}
}

// Prompt displays message and returns the user's response with surrounding
// whitespace trimmed.
func (s *Shell) Prompt(message string) (string, error) {
	fmt.Fprintf(s.out, "%s ", message)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// PromptHidden displays message and reads a response without echoing it,
// for passwords. When input is not a terminal it falls back to a plain
// line read so the shell remains scriptable.
func (s *Shell) PromptHidden(message string) (string, error) {
	f, ok := s.raw.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s.Prompt(message)
	}

	fmt.Fprintf(s.out, "%s ", message)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(s.out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Confirm displays message and returns true only for an affirmative
// response ("y" or "yes", case-insensitive). Anything else, including an
// empty response, is a refusal.
func (s *Shell) Confirm(message string) (bool, error) {
	answer, err := s.Prompt(message + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Info writes a line of user-facing output.
func (s *Shell) Info(message string) {
	fmt.Fprintln(s.out, message)
}

// Error writes a line of diagnostic output.
func (s *Shell) Error(message string) {
	fmt.Fprintln(s.err, message)
}
