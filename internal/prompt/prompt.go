// Package prompt collects user input for menu actions.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInterrupted is returned when the user aborts input with ctrl+c.
var ErrInterrupted = errors.New("input interrupted")

// Prompter asks the user one question and returns the trimmed answer.
// io.EOF means the input is exhausted.
type Prompter interface {
	Ask(ctx context.Context, label string) (string, error)
}

// Lines reads answers one line at a time. It serves piped input and tests.
type Lines struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLines returns a Prompter printing labels to w and reading answers from r.
func NewLines(r io.Reader, w io.Writer) *Lines {
	return &Lines{in: bufio.NewReader(r), out: w}
}

func (l *Lines) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(l.out, label)
	line, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Input asks for label. A required input is asked again until it is non-empty.
func Input(ctx context.Context, p Prompter, label string, required bool) (string, error) {
	for {
		value, err := p.Ask(ctx, label+": ")
		if err != nil {
			return "", err
		}
		if value != "" || !required {
			return value, nil
		}
	}
}

// ID asks until the answer parses as an integer.
func ID(ctx context.Context, p Prompter, label string) (int64, error) {
	for {
		value, err := Input(ctx, p, label, true)
		if err != nil {
			return 0, err
		}
		if id, err := strconv.ParseInt(value, 10, 64); err == nil {
			return id, nil
		}
	}
}

// Confirm asks a yes/no question that defaults to yes.
func Confirm(ctx context.Context, p Prompter, label string) (bool, error) {
	value, err := Input(ctx, p, label, false)
	if err != nil {
		return false, err
	}
	return value == "" || value == "Y" || value == "y", nil
}
