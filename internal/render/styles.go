// SPDX-License-Identifier: MPL-2.0

// Package render turns trees, deltas and copy plans into terminal-ready
// strings and JSON documents. Everything here is a pure function of its
// inputs; no writer state is held.
package render

import "github.com/charmbracelet/lipgloss"

// Color palette for parameter output, keyed to the parameter kinds.
const (
	colorNamespace = lipgloss.Color("#3B82F6") // blue
	colorString    = lipgloss.Color("#10B981") // green
	colorSecure    = lipgloss.Color("#F59E0B") // amber
	colorList      = lipgloss.Color("#06B6D4") // cyan
	colorMuted     = lipgloss.Color("#6B7280") // gray
	colorDanger    = lipgloss.Color("#EF4444") // red
)

var (
	rootStyle      = lipgloss.NewStyle().Bold(true)
	namespaceStyle = lipgloss.NewStyle().Bold(true).Foreground(colorNamespace)
	stringStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorString)
	secureStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSecure)
	listStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorList)
	kindTagStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle     = lipgloss.NewStyle().Italic(true)
	redactedStyle  = lipgloss.NewStyle().Italic(true).Foreground(colorDanger)
	branchStyle    = lipgloss.NewStyle().Foreground(colorMuted)

	removedStyle = lipgloss.NewStyle().Foreground(colorDanger)
	addedStyle   = lipgloss.NewStyle().Foreground(colorString)
	changedStyle = lipgloss.NewStyle().Foreground(colorSecure)
	headerStyle  = lipgloss.NewStyle().Bold(true)
)
