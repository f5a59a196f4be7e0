// Package format renders sizes and ratios for console output.
package format

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"KB", "MB", "GB", "TB", "PB"}

// Bytes returns a human-readable size using 1024-based units (B, KB, MB, GB,
// TB, PB). Values below 1 KB are printed as whole bytes.
func Bytes(n int64) string {
	if n < 0 {
		// -n overflows for math.MinInt64
		return "-" + unsignedBytes(uint64(-(n+1))+1)
	}

	return unsignedBytes(uint64(n))
}

func unsignedBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	v := float64(n) / unit
	exp := 0
	// compare the value as printed so 1048575 becomes "1.0 MB", not "1024.0 KB"
	for math.Round(v*10) >= unit*10 && exp < len(sizeUnits)-1 {
		v /= unit
		exp++
	}

	return fmt.Sprintf("%.1f %s", v, sizeUnits[exp])
}

// Percent renders a ratio such as 0.4213 as "42.1%".
func Percent(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%%", ratio*100)
}
