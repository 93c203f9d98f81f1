package util

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// FormatNumber groups thousands with commas and keeps between minFrac and
// maxFrac fraction digits, e.g. FormatNumber(87.5, 1, 2) = "87.5" and
// FormatNumber(798000, 0, 2) = "798,000".
func FormatNumber(v float64, minFrac, maxFrac int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	scale := math.Pow10(maxFrac)
	v = math.Round(v*scale) / scale
	if v == 0 {
		v = 0 // drop negative zero
	}

	s := humanize.Commaf(v)
	if minFrac <= 0 {
		return s
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s + "." + strings.Repeat("0", minFrac)
	}
	if frac := len(s) - dot - 1; frac < minFrac {
		s += strings.Repeat("0", minFrac-frac)
	}
	return s
}

// LocaleNumber formats like an en-US locale number: grouped thousands and at
// most three fraction digits.
func LocaleNumber(v float64) string {
	return FormatNumber(v, 0, 3)
}

// FormatCurrency formats v as dollars, "$87,500".
func FormatCurrency(v float64) string {
	return "$" + LocaleNumber(v)
}

// FormatPercent formats v as "78.9%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// FormatGrowth formats a growth rate with an explicit plus for positive
// values: "+15.3%", "-2.1%", "0%".
func FormatGrowth(v float64) string {
	if v > 0 {
		return "+" + FormatPercent(v)
	}
	return FormatPercent(v)
}

// FormatChange formats a KPI change; zero counts as positive: "+0%".
func FormatChange(v float64) string {
	if v >= 0 {
		return "+" + FormatPercent(v)
	}
	return FormatPercent(v)
}

// FormatKPIValue formats a KPI value with its prefix and suffix. Percent
// values always show one decimal, everything else up to two.
func FormatKPIValue(v float64, prefix, suffix string) string {
	minFrac := 0
	if suffix == "%" {
		minFrac = 1
	}
	return prefix + FormatNumber(v, minFrac, 2) + suffix
}

// FormatCompact shortens large values for chart axes, "85k", "1.2M".
func FormatCompact(v float64) string {
	value, unit := humanize.ComputeSI(v)
	return humanize.FtoaWithDigits(value, 1) + unit
}

// FormatTimestamp formats t relative to now, "3 minutes ago".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return humanize.Time(t)
}

// TruncateString truncates a string to maxLen display cells and adds "..."
// if needed.
func TruncateString(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// PadLeft pads s with leading spaces to width display cells.
func PadLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
