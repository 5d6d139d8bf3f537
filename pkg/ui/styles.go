package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/headerguard/headerguard/pkg/scanner"
)

// Semantic styles with adaptive colors so output reads on both light and
// dark terminal themes.
var (
	styleCompliant = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	styleFixed = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"}).Bold(true)
	styleViolating = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"}).Bold(true)
	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"})
	styleExcluded = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "240"})
	styleInterrupted = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	styleSummary = lipgloss.NewStyle().Bold(true)
	styleDiffAdd = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	styleDiffDel = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"})
)

func styleFor(status scanner.Status) lipgloss.Style {
	switch status {
	case scanner.StatusCompliant:
		return styleCompliant
	case scanner.StatusFixed:
		return styleFixed
	case scanner.StatusViolating:
		return styleViolating
	case scanner.StatusError:
		return styleError
	case scanner.StatusExcluded:
		return styleExcluded
	case scanner.StatusInterrupted:
		return styleInterrupted
	default:
		return lipgloss.NewStyle()
	}
}
