// Package menu runs the interactive option menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nikbrunner/bark/internal/option"
	"github.com/nikbrunner/bark/internal/prompt"
)

// ErrDuplicateShortcut is returned when two entries share a shortcut.
var ErrDuplicateShortcut = errors.New("duplicate menu shortcut")

const clearSequence = "\033[H\033[2J"

// Entry is one line of the menu.
type Entry struct {
	Key    string
	Option option.Option
}

// Params configures a Menu.
type Params struct {
	// Options builds the entries. It is called once per iteration.
	Options  func() []Entry
	Prompter prompt.Prompter
	Out      io.Writer
	// Clear clears the screen before the menu and before each action.
	Clear  bool
	Styles Styles
}

// Menu repeatedly shows the options, runs the chosen one and prints its
// outcome until an option asks to exit.
type Menu struct {
	options  func() []Entry
	prompter prompt.Prompter
	out      io.Writer
	clear    bool
	styles   Styles
}

// New creates a Menu.
func New(p Params) *Menu {
	return &Menu{
		options:  p.Options,
		prompter: p.Prompter,
		out:      p.Out,
		clear:    p.Clear,
		styles:   p.Styles,
	}
}

// Run loops until an option exits or input ends. End of input and ctrl+c
// are a normal end; every other error is returned.
func (m *Menu) Run(ctx context.Context) error {
	for {
		exit, err := m.Step(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// Step runs a single menu iteration and reports whether to exit.
func (m *Menu) Step(ctx context.Context) (bool, error) {
	entries := m.options()
	table, err := index(entries)
	if err != nil {
		return false, err
	}

	m.clearScreen()
	m.printOptions(entries)

	chosen, err := m.choose(ctx, table)
	if err != nil {
		return false, err
	}

	m.clearScreen()
	out, err := chosen.Choose(ctx, m.prompter)
	if err != nil {
		return false, err
	}
	if out.Shown && out.Message != "" {
		fmt.Fprintln(m.out, out.Message)
	}
	if out.Exit {
		return true, nil
	}

	_, err = m.prompter.Ask(ctx, m.styles.Hint.Render("Press ENTER to return to menu"))
	return false, err
}

func index(entries []Entry) (map[string]option.Option, error) {
	table := make(map[string]option.Option, len(entries))
	for _, e := range entries {
		key := strings.ToUpper(e.Key)
		if _, ok := table[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateShortcut, key)
		}
		table[key] = e.Option
	}
	return table, nil
}

func (m *Menu) printOptions(entries []Entry) {
	for _, e := range entries {
		fmt.Fprintf(m.out, "%s %s\n",
			m.styles.Key.Render("("+strings.ToUpper(e.Key)+")"),
			m.styles.Name.Render(e.Option.String()),
		)
	}
	fmt.Fprintln(m.out)
}

// choose asks until the answer names an entry, ignoring case.
func (m *Menu) choose(ctx context.Context, table map[string]option.Option) (option.Option, error) {
	for {
		choice, err := m.prompter.Ask(ctx, "Choose an option: ")
		if err != nil {
			return nil, err
		}
		if opt, ok := table[strings.ToUpper(choice)]; ok {
			return opt, nil
		}
		fmt.Fprintln(m.out, m.styles.Warning.Render("Invalid choice"))
	}
}

func (m *Menu) clearScreen() {
	if m.clear {
		fmt.Fprint(m.out, clearSequence)
	}
}
