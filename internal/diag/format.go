package diag

import (
	"fmt"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string    { return color(colorRed, text) }
func yellow(text string) string { return color(colorYellow, text) }
func cyan(text string) string   { return color(colorCyan, text) }
func gray(text string) string   { return color(colorGray, text) }
func bold(text string) string   { return color(colorBold, text) }

// Format returns a terminal-formatted rendering of the diagnostic.
func (d *Diagnostic) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(red(bold("ERROR ")))
	if d.Code != "" {
		b.WriteString(bold(d.Code + ": "))
	}
	b.WriteString(d.Message)
	b.WriteString("\n")
	b.WriteString(gray(fmt.Sprintf("  [%s]", d.Category)))
	b.WriteString("\n")

	if d.Detail != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(d.Detail, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	if d.Wrapped != nil {
		b.WriteString("\n")
		b.WriteString(gray("  caused by: " + d.Wrapped.Error()))
		b.WriteString("\n")
	}

	if d.Suggestion != "" {
		b.WriteString("\n")
		b.WriteString(yellow("  hint: "))
		b.WriteString(d.Suggestion)
		b.WriteString("\n")
	}

	if d.Example != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(d.Example, "\n") {
			b.WriteString(gray("  | ") + line + "\n")
		}
	}

	if d.DocURL != "" {
		b.WriteString("\n")
		b.WriteString(cyan("  docs: " + d.DocURL))
		b.WriteString("\n")
	}

	return b.String()
}
