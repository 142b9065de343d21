package cmd

import "github.com/charmbracelet/lipgloss"

var (
	colorOK     = lipgloss.Color("#22c55e")
	colorErr    = lipgloss.Color("#ef4444")
	colorWarn   = lipgloss.Color("#eab308")
	colorInfo   = lipgloss.Color("#06b6d4")
	colorMuted  = lipgloss.Color("#6b7280")
	colorAccent = lipgloss.Color("#8b5cf6")

	okStyle      = lipgloss.NewStyle().Foreground(colorOK)
	errStyle     = lipgloss.NewStyle().Foreground(colorErr)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	keyStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	nameStyle    = lipgloss.NewStyle().Bold(true)
)
