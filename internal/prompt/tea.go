package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Tea asks each question with a small bubbletea text input. It needs a
// terminal; use Lines otherwise.
type Tea struct {
	opts []tea.ProgramOption
}

// NewTea returns a terminal Prompter. opts are passed to every program.
func NewTea(opts ...tea.ProgramOption) *Tea {
	return &Tea{opts: opts}
}

func (t *Tea) Ask(ctx context.Context, label string) (string, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.opts...)

	final, err := tea.NewProgram(newInputModel(label), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	m := final.(inputModel)
	switch {
	case m.interrupted:
		return "", ErrInterrupted
	case m.eof:
		return "", io.EOF
	}
	return m.Value(), nil
}

// inputModel is a single-line question that quits on enter.
type inputModel struct {
	input       textinput.Model
	done        bool
	interrupted bool
	eof         bool
}

func newInputModel(label string) inputModel {
	input := textinput.New()
	input.Prompt = label
	input.CharLimit = 2048
	input.Focus()
	return inputModel{input: input}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.interrupted = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.eof = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.interrupted || m.eof {
		// Leave the answered question on screen without a cursor
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View() + "\n"
}

// Value is the trimmed answer.
func (m inputModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}
