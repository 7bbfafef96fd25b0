package core

import (
	"fmt"
	"time"
)

// TimestampLayout is the display layout of every reported timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders n bytes with the largest base-1024 unit whose scaled
// value stays below 1024, always with two decimals ("1536" → "1.50 KB").
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range sizeUnits {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f TB", size)
}

// FormatTimestamp renders t in local time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(TimestampLayout)
}
