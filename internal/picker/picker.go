// Package picker lets the user pick one search result to open or copy.
package picker

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bark/internal/model"
	"github.com/nikbrunner/bark/internal/search"
)

// Action is what the user decided to do with the picked bookmark.
type Action int

const (
	ActionNone Action = iota // cancelled
	ActionOpen
	ActionCopy
)

// KeyMap defines the picker key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Copy   key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"})

	matchStyle = lipgloss.NewStyle().
			Foreground(accent).
			Underline(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtle)
)

// Picker is a bubbletea model listing search results.
type Picker struct {
	results []search.SearchResult
	query   string
	keys    KeyMap
	cursor  int
	action  Action
	// copyURL writes to the system clipboard.
	copyURL func(string) error
	err     error
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		keys:    DefaultKeyMap(),
		copyURL: clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Cancel):
		p.action = ActionNone
		return p, tea.Quit

	case key.Matches(keyMsg, p.keys.Open):
		if len(p.results) > 0 {
			p.action = ActionOpen
		}
		return p, tea.Quit

	case key.Matches(keyMsg, p.keys.Copy):
		if b := p.current(); b != nil {
			p.err = p.copyURL(b.URL)
			p.action = ActionCopy
		}
		return p, tea.Quit

	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < len(p.results)-1 {
			p.cursor++
		}

	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		fmt.Fprintf(&b, "%s%s\n", cursor, highlight(result, style))
		fmt.Fprintf(&b, "   %s\n", urlStyle.Render(result.Bookmark.URL))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(p.keys)))

	return b.String()
}

func helpLine(k KeyMap) string {
	bindings := []key.Binding{k.Down, k.Up, k.Open, k.Copy, k.Cancel}
	parts := make([]string, len(bindings))
	for i, kb := range bindings {
		parts[i] = kb.Help().Key + ": " + kb.Help().Desc
	}
	return strings.Join(parts, "  ")
}

// highlight renders the title with its fuzzy-matched runes emphasised.
func highlight(r search.SearchResult, base lipgloss.Style) string {
	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, i := range r.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, c := range r.Bookmark.Title {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(c)))
		} else {
			b.WriteString(base.Render(string(c)))
		}
	}
	return b.String()
}

func (p Picker) current() *model.Bookmark {
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// Action returns what the user chose to do.
func (p Picker) Action() Action {
	return p.action
}

// SelectedBookmark returns the picked bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.action == ActionNone {
		return nil
	}
	return p.current()
}

// Err returns the clipboard error of a copy, if any.
func (p Picker) Err() error {
	return p.err
}
