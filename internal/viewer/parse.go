package viewer

import (
	"math"
	"strconv"
	"strings"
)

// parsePercent reads "150", "150%" or " 150 % " as 1.5.
func parsePercent(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(text, "%"))
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value / 100, true
}

// parsePageNumber reads a 1-based page number and returns the 0-based index.
func parsePageNumber(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

// roundZoom drops floating point drift from repeated steps.
func roundZoom(z float64) float64 {
	return math.Round(z*1e6) / 1e6
}
