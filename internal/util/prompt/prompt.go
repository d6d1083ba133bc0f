// Package prompt reads secrets from the terminal without echoing them.
package prompt

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

var ErrNotATerminal = errors.New("stdin is not a terminal")

// Terminal reads secrets from a terminal file descriptor and writes prompts to Out
type Terminal struct {
	FD  int
	Out io.Writer
}

// Stdin returns a Terminal reading from os.Stdin and prompting on os.Stderr
func Stdin() *Terminal {
	return &Terminal{
		FD:  int(os.Stdin.Fd()),
		Out: os.Stderr,
	}
}

// IsTerminal reports whether FD is connected to a terminal
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(t.FD)
}

// Secret prints label and reads a line without echo
func (t *Terminal) Secret(label string) (string, error) {
	if !t.IsTerminal() {
		return "", ErrNotATerminal
	}

	fmt.Fprint(t.Out, label)
	secret, err := term.ReadPassword(t.FD)
	fmt.Fprintln(t.Out)
	if err != nil {
		return "", errors.Wrap(err, "failed to read from terminal")
	}

	return string(secret), nil
}

// ConfirmedSecret reads a secret twice and fails when both inputs differ
func (t *Terminal) ConfirmedSecret(label string) (string, error) {
	first, err := t.Secret(label)
	if err != nil {
		return "", err
	}

	second, err := t.Secret("Repeat " + label)
	if err != nil {
		return "", err
	}

	if first != second {
		return "", errors.New("inputs do not match")
	}

	return first, nil
}
