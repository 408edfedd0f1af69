// Package output provides styling helpers for terminal output.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles provides styled output helpers for the CLI. Styling degrades to
// plain text automatically on non-terminal writers and restricted color
// profiles.
type Styles struct {
	success  lipgloss.Style
	failure  lipgloss.Style
	filePath lipgloss.Style
	account  lipgloss.Style
	amount   lipgloss.Style
	keyword  lipgloss.Style
	dim      lipgloss.Style
	warning  lipgloss.Style
}

// NewStyles creates a new Styles instance rendering to the given writer.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)

	return &Styles{
		success:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		filePath: r.NewStyle().Foreground(lipgloss.Color("6")),
		account:  r.NewStyle().Foreground(lipgloss.Color("3")),
		amount:   r.NewStyle().Foreground(lipgloss.Color("5")),
		keyword:  r.NewStyle().Bold(true),
		dim:      r.NewStyle().Faint(true),
		warning:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	}
}

// IsTerminal reports whether f is connected to a terminal and styling is
// worth enabling at all. NO_COLOR is honored.
func IsTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or fallback when f is not a
// terminal or its size cannot be determined.
func Width(f *os.File, fallback int) int {
	if !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.success.Render(text)
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.failure.Render(text)
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.filePath.Render(text)
}

// Account returns a styled account name (yellow).
func (s *Styles) Account(text string) string {
	return s.account.Render(text)
}

// Amount returns a styled amount/currency (magenta).
func (s *Styles) Amount(text string) string {
	return s.amount.Render(text)
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.keyword.Render(text)
}

// Dim returns dimmed text, for secondary information.
func (s *Styles) Dim(text string) string {
	return s.dim.Render(text)
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.warning.Render(text)
}
