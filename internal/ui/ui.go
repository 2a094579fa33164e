// Package ui prints styled status lines for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleDim     = lipgloss.NewStyle().Faint(true)
)

// Console writes human-facing status messages, optionally styled.
type Console struct {
	w     io.Writer
	color bool
}

// New builds a console on w. Styling is enabled only when noColor is false,
// NO_COLOR is unset, and w is a terminal.
func New(w io.Writer, noColor bool) *Console {
	color := !noColor && os.Getenv("NO_COLOR") == ""
	if color {
		if f, ok := w.(*os.File); ok {
			color = term.IsTerminal(int(f.Fd()))
		} else {
			color = false
		}
	}
	return &Console{w: w, color: color}
}

// Status prints an informational progress line.
func (c *Console) Status(format string, args ...any) {
	c.println(styleInfo, fmt.Sprintf(format, args...))
}

// Success prints a completed-step line with an OK marker.
func (c *Console) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.color {
		fmt.Fprintln(c.w, styleSuccess.Render("OK"), msg)
		return
	}
	fmt.Fprintln(c.w, "OK", msg)
}

// Warn prints a cautionary line.
func (c *Console) Warn(format string, args ...any) {
	c.println(styleWarn, fmt.Sprintf(format, args...))
}

// Error prints an error line with an Error: prefix.
func (c *Console) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.color {
		fmt.Fprintln(c.w, styleError.Render("Error:"), msg)
		return
	}
	fmt.Fprintln(c.w, "Error:", msg)
}

// Dim prints a secondary hint line.
func (c *Console) Dim(format string, args ...any) {
	c.println(styleDim, fmt.Sprintf(format, args...))
}

func (c *Console) println(style lipgloss.Style, msg string) {
	if c.color {
		fmt.Fprintln(c.w, style.Render(msg))
		return
	}
	fmt.Fprintln(c.w, msg)
}
