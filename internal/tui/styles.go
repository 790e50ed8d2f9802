package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	answerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
