package menu

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the menu. Success messages are
// printed unstyled so listed rows keep their tabs.
type Styles struct {
	Key     lipgloss.Style // shortcut letter, e.g. "(A)"
	Name    lipgloss.Style // option name
	Warning lipgloss.Style // "Invalid choice"
	Hint    lipgloss.Style // "Press ENTER to return to menu"
}

// DefaultStyles returns the default style configuration.
// Grayscale with a single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	warning := lipgloss.AdaptiveColor{Light: "#8A5A44", Dark: "#C08060"}

	return Styles{
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Name: lipgloss.NewStyle().
			Foreground(primary),

		Warning: lipgloss.NewStyle().
			Foreground(warning),

		Hint: lipgloss.NewStyle().
			Foreground(subtle),
	}
}

// PlainStyles renders everything unstyled.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Key: plain, Name: plain, Warning: plain, Hint: plain}
}
