// Package display formats sizes and counts for command output.
package display

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders integers with thousands separators.
var printer = message.NewPrinter(language.English)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatUnsignedBytes is FormatBytes for free space figures.
func FormatUnsignedBytes(bytes uint64) string {
	if bytes > 1<<63-1 {
		bytes = 1<<63 - 1
	}
	return FormatBytes(int64(bytes))
}

// FormatExactBytes returns the byte count with thousands separators
// (e.g. "1,073,741,824 bytes").
func FormatExactBytes(bytes int64) string {
	if bytes == 1 {
		return "1 byte"
	}
	return printer.Sprintf("%d bytes", bytes)
}

// FormatCount renders n with the matching noun (e.g. "1,204 files", "1 file").
func FormatCount(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return printer.Sprintf("%d %s", n, plural)
}
