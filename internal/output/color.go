package output

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// ParseColorMode converts a string to a ColorMode, defaulting to auto.
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		// Check if writer is a file and if it's a terminal
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// ColorizeSavings colors a savings figure by how much was saved.
func ColorizeSavings(percent int, text string) string {
	switch {
	case percent >= 25:
		return colorGreen + text + colorReset
	case percent > 0:
		return colorYellow + text + colorReset
	default:
		return colorGray + text + colorReset
	}
}

// FormatReport formats a report summary line with optional coloring.
func FormatReport(r Report, colorize bool) string {
	savings := fmt.Sprintf("%d%% saved", r.SavingsPercent)
	if colorize {
		savings = ColorizeSavings(r.SavingsPercent, savings)
	}

	source := r.Source
	if source == "" {
		source = "(stdin)"
	}
	if colorize {
		source = colorBold + source + colorReset
	}

	return fmt.Sprintf("%s: %d -> %d tokens (%s)",
		source, r.OriginalTokens, r.OptimizedTokens, savings)
}

// WriteColoredReport writes a report summary line with color based on ColorMode.
func (wr *Writer) WriteColoredReport(r Report, mode ColorMode) error {
	colorize := shouldColorize(mode, wr.w)
	line := FormatReport(r, colorize)
	_, err := fmt.Fprintln(wr.w, line)
	return err
}
