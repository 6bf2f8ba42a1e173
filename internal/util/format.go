package util

import (
	"fmt"
	"strconv"
)

// FormatDegrees formats an angle as a CSS-style rotation, e.g. "-7.5deg".
func FormatDegrees(deg float64) string {
	if deg == 0 {
		// avoid "-0deg"
		deg = 0
	}
	return strconv.FormatFloat(deg, 'f', -1, 64) + "deg"
}

// FormatPercent formats a ratio in [0, 1] as a whole percentage.
func FormatPercent(ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return fmt.Sprintf("%d%%", int(ratio*100+0.5))
}
