// Package fancy provides pretty printing utilities and styling for CLI output
package fancy

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

var (
	ColorBlue     = lipgloss.Color("39")
	ColorGreen    = lipgloss.Color("82")
	ColorYellow   = lipgloss.Color("228")
	ColorCyan     = lipgloss.Color("45")
	ColorRed      = lipgloss.Color("196")
	ColorGray     = lipgloss.Color("250")
	ColorWhite    = lipgloss.Color("15")
	ColorDarkGray = lipgloss.Color("240")
)

var (
	RootStyle   = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
	BranchStyle = lipgloss.NewStyle().Foreground(ColorDarkGray)
	ScriptStyle = lipgloss.NewStyle().Foreground(ColorCyan)
	ActionStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	ValidStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorRed)
)

// Tree returns a new tree with common styling applied
func Tree() *tree.Tree {
	return tree.New().
		EnumeratorStyle(BranchStyle).
		Enumerator(tree.RoundedEnumerator)
}

// BranchNode creates a styled section header node
func BranchNode(title, info string) *tree.Tree {
	return Tree().Root(
		lipgloss.JoinHorizontal(lipgloss.Top, HeaderStyle.Render(title), " ", InfoStyle.Render(info)),
	)
}

// ScriptText styles a script name
func ScriptText(text string) string { return ScriptStyle.Render(text) }

// ActionText styles a bridge action
func ActionText(text string) string { return ActionStyle.Render(text) }

// ValidText styles success text (green)
func ValidText(text string) string { return ValidStyle.Render(text) }

// ErrorText styles error text (red)
func ErrorText(text string) string { return ErrorStyle.Render(text) }

// PathText styles resource paths (gray)
func PathText(text string) string { return InfoStyle.Render(text) }

// SummaryText styles summary information (dark gray)
func SummaryText(text string) string { return BranchStyle.Render(text) }

// TruncateString truncates a string if it exceeds maxLength
func TruncateString(s string, maxLength int) string {
	if len(s) <= maxLength || maxLength < 4 {
		return s
	}
	return s[:maxLength-3] + "..."
}
