package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
)

func scripted(input string) (*Lines, *bytes.Buffer) {
	var out bytes.Buffer
	return NewLines(strings.NewReader(input), &out), &out
}

func TestLines_Ask(t *testing.T) {
	p, out := scripted("  hello  \r\nlast")
	ctx := context.Background()

	got, err := p.Ask(ctx, "Say: ")
	assert.NilError(t, err)
	assert.Equal(t, got, "hello")

	// A final line without newline is still an answer
	got, err = p.Ask(ctx, "Again: ")
	assert.NilError(t, err)
	assert.Equal(t, got, "last")

	_, err = p.Ask(ctx, "More: ")
	assert.Assert(t, errors.Is(err, io.EOF))

	assert.Equal(t, out.String(), "Say: Again: More: ")
}

func TestLines_CancelledContext(t *testing.T) {
	p, out := scripted("x\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ask(ctx, "Q: ")
	assert.Assert(t, errors.Is(err, context.Canceled))
	assert.Equal(t, out.String(), "")
}

func TestInput_RequiredReprompts(t *testing.T) {
	p, out := scripted("\n   \nGo\n")

	got, err := Input(context.Background(), p, "Title", true)
	assert.NilError(t, err)
	assert.Equal(t, got, "Go")
	assert.Equal(t, out.String(), "Title: Title: Title: ")
}

func TestInput_OptionalAcceptsBlank(t *testing.T) {
	p, out := scripted("\n")

	got, err := Input(context.Background(), p, "Notes", false)
	assert.NilError(t, err)
	assert.Equal(t, got, "")
	assert.Equal(t, out.String(), "Notes: ")
}

func TestInput_EOFWhileRequired(t *testing.T) {
	p, _ := scripted("\n")

	_, err := Input(context.Background(), p, "Title", true)
	assert.Assert(t, errors.Is(err, io.EOF))
}

func TestID(t *testing.T) {
	p, out := scripted("abc\n1.5\n\n42\n")

	id, err := ID(context.Background(), p, "Enter a bookmark ID to delete")
	assert.NilError(t, err)
	assert.Equal(t, id, int64(42))
	assert.Equal(t, strings.Count(out.String(), "Enter a bookmark ID to delete: "), 4)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"", true},
		{"Y", true},
		{"y", true},
		{"n", false},
		{"N", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run("answer "+tt.answer, func(t *testing.T) {
			p, _ := scripted(tt.answer + "\n")
			got, err := Confirm(context.Background(), p, "Preserve timestamps [Y/n]")
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func update(m inputModel, msg tea.Msg) (inputModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(inputModel), cmd
}

func TestInputModel_TypeAndEnter(t *testing.T) {
	m := newInputModel("Title: ")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" Go ")})
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Assert(t, m.done)
	assert.Assert(t, cmd != nil)
	assert.Equal(t, m.Value(), "Go")
	assert.Equal(t, m.View(), "Title:  Go \n")
}

func TestInputModel_CtrlC(t *testing.T) {
	m := newInputModel("Title: ")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Assert(t, m.interrupted)
	assert.Assert(t, cmd != nil)
}

func TestInputModel_CtrlDOnlyWhenEmpty(t *testing.T) {
	m := newInputModel("Title: ")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Assert(t, !m.eof)

	m = newInputModel("Title: ")
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Assert(t, m.eof)
	assert.Assert(t, cmd != nil)
}
