package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-homedir"
)

// TimestampLayout is the compact timestamp used in generated file names (YYYYMMDDHHMMSS)
const TimestampLayout = "20060102150405"

// Timestamp formats t with TimestampLayout
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatKB renders a byte count as kilobytes with one decimal, e.g. "12.5 KB"
func FormatKB(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

// GetDefaultConfigPath returns the default path for the defaults file
func GetDefaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		// Fallback to current directory if the home directory can't be determined
		return ".imagemerger.yaml"
	}
	return filepath.Join(home, ".imagemerger.yaml")
}

// TruncateToWidth shortens s so that it occupies at most width terminal cells.
// Wide (e.g. CJK) characters count as two cells.
func TruncateToWidth(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// PadToWidth right-pads s with spaces up to width terminal cells
func PadToWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TrimAnswer removes surrounding whitespace and a trailing carriage return from console input
func TrimAnswer(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(s, "\r"))
}
