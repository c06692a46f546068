package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmarins/taskdeck"
)

const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

var (
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
)

func colorize(color string, s string) string {
	return color + s + colorReset
}

// formatTaskLine renders a task the way the list shows it:
// [priority] title - description
func formatTaskLine(t taskdeck.Task) string {
	return fmt.Sprintf("[%s] %s - %s", t.Priority, t.Title, t.Description)
}
