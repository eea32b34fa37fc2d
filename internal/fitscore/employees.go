package fitscore

import (
	"regexp"
	"strconv"
	"strings"
)

var rangeNumber = regexp.MustCompile(`\d+(?:\.\d+)?\s*[kK]?`)

// ParseEmployeeRange turns a size band into a single headcount. A closed band
// yields its midpoint truncated toward zero ("11-50" is 30), an open band
// like "1,000+" yields its lower bound, and a bare number is returned as is.
func ParseEmployeeRange(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}

	matches := rangeNumber.FindAllString(cleaned, 2)
	if len(matches) == 0 {
		return 0, false
	}

	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		n, ok := parseCount(m)
		if !ok {
			return 0, false
		}
		nums = append(nums, n)
	}

	if len(nums) == 1 {
		return int(nums[0]), true
	}
	lo, hi := nums[0], nums[1]
	if hi < lo {
		lo, hi = hi, lo
	}
	return int((lo + hi) / 2), true
}

func parseCount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	mult := 1.0
	if strings.HasSuffix(s, "k") || strings.HasSuffix(s, "K") {
		mult = 1000
		s = strings.TrimSpace(s[:len(s)-1])
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n * mult, true
}
