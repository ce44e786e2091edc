// Package ui holds the color themes shared by the console output and the
// lipgloss summary panel.
package ui
