package utils

import (
	"fmt"
	"time"
)

const byteUnits = "KMGTPE"

// FormatBytes renders a byte counter with binary units. Negative counts
// render as zero.
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", max(n, 0))
	}
	value := float64(n)
	unit := -1
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %cB", value, byteUnits[unit])
}

// FormatUptime truncates d to whole seconds and prefixes whole days, e.g.
// "3d4h0m12s".
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < 0 {
		d = 0
	}
	const day = 24 * time.Hour
	if d < day {
		return d.String()
	}
	return fmt.Sprintf("%dd%s", d/day, d%day)
}
