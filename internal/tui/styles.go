package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a001a")).
			Background(lipgloss.Color("#ff00ff"))

	cellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)

	acceptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	rejectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	limitStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)
