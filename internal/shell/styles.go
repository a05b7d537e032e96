package shell

import "github.com/charmbracelet/lipgloss"

var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	agentStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
	thinkingStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#626262"))
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
