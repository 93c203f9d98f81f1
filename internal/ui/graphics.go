package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// TerminalCapabilities represents what the terminal can draw for charts.
type TerminalCapabilities struct {
	Unicode bool
	Color   bool
}

// DetectTerminalCapabilities inspects the environment of the current process.
func DetectTerminalCapabilities() TerminalCapabilities {
	term := os.Getenv("TERM")
	return TerminalCapabilities{
		Unicode: detectUnicodeSupport(term),
		Color: term != "dumb" && os.Getenv("NO_COLOR") == "" &&
			(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())),
	}
}

// detectUnicodeSupport looks at the locale variables; block glyphs need UTF-8.
func detectUnicodeSupport(term string) bool {
	if term == "dumb" || strings.HasPrefix(term, "vt1") {
		return false
	}
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := strings.ToUpper(os.Getenv(name))
		if v == "" {
			continue
		}
		return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
	}
	// Most modern terminals are UTF-8 even when the locale is unset.
	return true
}

// glyphs is the character set a chart is drawn with.
type glyphs struct {
	full     string
	partials []string // fractional cells, smallest first
	empty    string
	spark    []string
	up       string
	down     string
}

var unicodeGlyphs = glyphs{
	full:     "█",
	partials: []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"},
	empty:    "░",
	spark:    []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
	up:       "↑",
	down:     "↓",
}

var asciiGlyphs = glyphs{
	full:  "#",
	empty: ".",
	spark: []string{"_", ".", "-", "~", "=", "+", "*", "#"},
	up:    "^",
	down:  "v",
}

func (c TerminalCapabilities) glyphs() glyphs {
	if c.Unicode {
		return unicodeGlyphs
	}
	return asciiGlyphs
}
